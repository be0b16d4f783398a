package domain

const (
	MailTypeResetPassword  = "reset_password"
	MailTypeJobAccepted    = "job_accepted"
	MailTypeWorkerApproved = "worker_approved"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type JobAcceptedMailData struct {
	CompanyName string `json:"companyName"`
	WorkerName  string `json:"workerName"`
	JobTitle    string `json:"jobTitle"`
	Date        string `json:"date"`
	Shift       string `json:"shift"`
}

type WorkerApprovedMailData struct {
	WorkerName  string `json:"workerName"`
	CompanyName string `json:"companyName"`
}
