package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/quackapp/shift-matching/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Ana", "Ben", "Carla", "Diego", "Emma", "Felix", "Grace", "Hugo", "Iris", "Jonas",
	"Kira", "Liam", "Maya", "Noah", "Olga", "Pablo", "Quinn", "Rosa", "Sam", "Tara",
}

var lastNames = []string{
	"Silva", "Ortiz", "Novak", "Brown", "Kowalski", "Meyer", "Rossi", "Dubois", "Khan", "Lee",
	"Garcia", "Jensen", "Moreau", "Nakamura", "Okafor", "Petrov", "Quispe", "Ramos", "Schmidt", "Tan",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

// GenerateEmailFromName turns "Ana Silva" into something like "ana.silva42@domain".
func GenerateEmailFromName(name string, domainName string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + domainName
}

func GenerateRandomWorker(companyID int64, password string, emailDomainName string) (*domain.Worker, error) {
	name := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.Worker{
		CompanyID:    companyID,
		Name:         name,
		Email:        GenerateEmailFromName(name, emailDomainName),
		PasswordHash: string(passwordHash),
	}, nil
}

var companyWords = []string{"Harbor", "Summit", "Maple", "Pioneer", "Atlas", "Cedar", "Beacon", "Orchid"}
var companySuffixes = []string{"Logistics", "Catering", "Events", "Retail", "Staffing", "Hospitality"}

func GenerateRandomCompany(password string, emailDomainName string) (*domain.Company, error) {
	name := companyWords[rand.Intn(len(companyWords))] + " " + companySuffixes[rand.Intn(len(companySuffixes))]
	username := strings.ToLower(strings.ReplaceAll(name, " ", "")) + GenerateRandomID(0, 3)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	pkg := domain.PackageBasic
	if rand.Intn(2) == 0 {
		pkg = domain.PackagePro
	}

	return &domain.Company{
		Username:     username,
		Name:         name,
		Email:        username + "@" + emailDomainName,
		PasswordHash: string(passwordHash),
		Package:      pkg,
	}, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(52)]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

var jobTitles = []string{"Warehouse Picker", "Event Setup", "Line Cook", "Barista", "Cashier", "Delivery Helper"}
var jobLocations = []string{"Dock 4", "Main Hall", "Harbor St 12", "Central Kitchen", "North Store"}

// GenerateRandomJob places a job on one of the next `days` days starting at from.
func GenerateRandomJob(companyID int64, from domain.Day, days int) *domain.Job {
	title := jobTitles[rand.Intn(len(jobTitles))]

	return &domain.Job{
		CompanyID:       companyID,
		Title:           title,
		Description:     title + " needed, ref " + GenerateRandomID(3, 3),
		Location:        jobLocations[rand.Intn(len(jobLocations))],
		Date:            domain.DayOf(from.Time().AddDate(0, 0, rand.Intn(days))),
		Shift:           domain.Shifts[rand.Intn(len(domain.Shifts))],
		WorkersRequired: int32(rand.Intn(3) + 1),
	}
}

// GenerateRandomAvailability picks random (date, shift) pairs from the next
// days days with a Fisher-Yates shuffle.
func GenerateRandomAvailability(workerID int64, from domain.Day, days int) []*domain.AvailabilityEntry {
	slots := make([]*domain.AvailabilityEntry, 0, days*len(domain.Shifts))
	for i := 0; i < days; i++ {
		day := domain.DayOf(from.Time().AddDate(0, 0, i))
		for _, shift := range domain.Shifts {
			slots = append(slots, &domain.AvailabilityEntry{WorkerID: workerID, Date: day, Shift: shift})
		}
	}

	for i := len(slots) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		slots[i], slots[j] = slots[j], slots[i]
	}

	if len(slots) == 0 {
		return slots
	}

	return slots[:rand.Intn(len(slots))+1]
}
