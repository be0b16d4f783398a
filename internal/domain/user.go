package domain

import (
	"time"
)

type Role string

const (
	RoleWorker  Role = "worker"
	RoleCompany Role = "company"
)

type Package string

const (
	PackageBasic Package = "Basic"
	PackagePro   Package = "Pro"
)

type Worker struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"companyId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

type Company struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Package      Package   `json:"package"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
