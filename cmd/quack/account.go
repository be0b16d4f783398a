package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/quackapp/shift-matching/backend/internal/client"
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.err)
	email := fs.String("email", "", "worker email")
	username := fs.String("username", "", "company username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "worker":
		worker, err := a.api.WorkerLogin(ctx, *email, *password)
		if err != nil {
			return a.failure(err, "Login failed")
		}
		fmt.Fprintf(a.out, "Logged in as %s (worker #%d)\n", worker.Name, worker.ID)
	case "company":
		company, err := a.api.CompanyLogin(ctx, *username, *password)
		if err != nil {
			return a.failure(err, "Login failed")
		}
		fmt.Fprintf(a.out, "Logged in as %s (company #%d)\n", company.Name, company.ID)
	default:
		return errUsage
	}

	return a.session.Save(a.api.Session())
}

func (a *app) logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.logger.Warn("server logout failed", "error", err)
	}
	if err := a.session.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) password(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	fs.SetOutput(a.err)
	email := fs.String("email", "", "account email")
	otp := fs.String("otp", "", "verification code from the email")
	newPassword := fs.String("new", "", "new password")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	var (
		msg string
		err error
	)
	switch args[0] {
	case "forgot":
		msg, err = a.api.ForgotPassword(ctx, *email)
	case "reset":
		msg, err = a.api.ResetPassword(ctx, *email, *otp, *newPassword)
	default:
		return errUsage
	}
	if err != nil {
		return a.failure(err, "Something went wrong. Please try again.")
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.err)
	username := fs.String("username", "", "company username, also the code workers register with")
	name := fs.String("name", "", "company or worker name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password, at least 8 characters")
	pkg := fs.String("package", "", "Basic or Pro")
	company := fs.String("company", "", "username of the company to join")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	switch args[0] {
	case "company":
		c, err := a.api.RegisterCompany(ctx, client.CompanyRegistration{
			Username: *username,
			Name:     *name,
			Email:    *email,
			Password: *password,
			Package:  domain.Package(*pkg),
		})
		if err != nil {
			return a.failure(err, "Registration failed. Please check your details.")
		}
		fmt.Fprintf(a.out, "Registered %s (company #%d, %s package)\n", c.Name, c.ID, c.Package)
		return a.session.Save(a.api.Session())
	case "worker":
		msg, err := a.api.RegisterWorker(ctx, client.WorkerRegistration{
			Name:        *name,
			Email:       *email,
			Password:    *password,
			CompanyCode: *company,
		})
		if err != nil {
			return a.failure(err, "Registration failed. Please check your details.")
		}
		fmt.Fprintln(a.out, msg)
		return nil
	default:
		return errUsage
	}
}
