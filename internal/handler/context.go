package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	WorkerCtxKey  ContextKey = "worker"
	CompanyCtxKey ContextKey = "company"
	JobCtxKey     ContextKey = "job"
)
