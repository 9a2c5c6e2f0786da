// authctl is a small CLI around the client session manager: it logs in,
// registers, prints the current identity and logs out against a running
// auth server, persisting the session token between invocations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/medlegalmatch/auth-service/internal/api/dto"
	"github.com/medlegalmatch/auth-service/internal/config"
	"github.com/medlegalmatch/auth-service/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	client := session.NewAPIClient(cfg.Client.ServerURL, cfg.Client.RequestTimeout())
	store := session.NewFileTokenStore(cfg.Client.TokenPath)
	manager := session.NewManager(client, store)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = runLogin(ctx, manager, os.Args[2:])
	case "register":
		cmdErr = runRegister(ctx, manager, os.Args[2:])
	case "whoami":
		cmdErr = runWhoAmI(ctx, manager)
	case "logout":
		manager.Logout()
		fmt.Println("logged out")
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", cmdErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authctl <login|register|whoami|logout> [flags]")
}

func runLogin(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if err := manager.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	snap := manager.Snapshot()
	fmt.Printf("logged in as %s (%s)\n", snap.User.Name, snap.User.Email)
	return nil
}

func runRegister(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	userType := fs.String("type", "attorney", "account type: attorney or provider")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fullName := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	agree := fs.Bool("agree-to-terms", false, "accept the terms and conditions")
	plan := fs.String("plan", "", "pricing plan")

	firmName := fs.String("firm-name", "", "attorney: firm name")
	barNumber := fs.String("bar-number", "", "attorney: bar number")
	practiceStates := fs.String("practice-states", "", "attorney: comma-separated state codes")
	firmSize := fs.String("firm-size", "", "attorney: firm size bucket")

	practiceName := fs.String("practice-name", "", "provider: practice name")
	title := fs.String("title", "", "provider: professional title")
	licenseNumber := fs.String("license-number", "", "provider: license number")
	licensedStates := fs.String("licensed-states", "", "provider: comma-separated state codes")
	years := fs.Int("years", 0, "provider: years of experience")
	_ = fs.Parse(args)

	payload := dto.RegisterRequest{
		Email:             *email,
		Password:          *password,
		FullName:          *fullName,
		Phone:             *phone,
		UserType:          *userType,
		AgreeToTerms:      *agree,
		FirmName:          *firmName,
		BarNumber:         *barNumber,
		StatesOfPractice:  splitStates(*practiceStates),
		FirmSize:          *firmSize,
		PracticeName:      *practiceName,
		ProfessionalTitle: *title,
		LicenseNumber:     *licenseNumber,
		StatesLicensed:    splitStates(*licensedStates),
		YearsExperience:   *years,
		PricingPlan:       *plan,
	}

	if err := manager.Register(ctx, payload); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	snap := manager.Snapshot()
	fmt.Printf("registered %s account for %s\n", snap.User.UserType, snap.User.Email)
	return nil
}

func runWhoAmI(ctx context.Context, manager *session.Manager) error {
	if err := manager.Restore(ctx); err != nil {
		return fmt.Errorf("not authenticated: %w", err)
	}

	snap := manager.Snapshot()
	if snap.State != session.StateAuthenticated {
		fmt.Println("not authenticated")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", snap.User.Name, snap.User.Email, snap.User.UserType)
	return nil
}

func splitStates(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	states := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			states = append(states, trimmed)
		}
	}
	return states
}
