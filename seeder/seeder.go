package seeder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fuyadhasanfahim/hr-management-sub001/models"
	util "github.com/fuyadhasanfahim/hr-management-sub001/pkg/utils"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

// SeedAdmin creates the initial super admin account when no user with
// the given email exists yet.
func SeedAdmin(userRepo *repository.UserRepository, email, password string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := userRepo.FindUserByEmail(ctx, email)
	if err == nil && existing != nil {
		log.Info().Str("email", email).Msg("admin user already exists, skipping seed")
		return
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := &models.User{
		Name:     "Super Admin",
		Email:    email,
		Password: hashed,
		Role:     models.RoleSuperAdmin,
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("admin user seeded")
}

// SeedBranches inserts a default branch set, skipping names that exist.
func SeedBranches(branchRepo repository.BranchRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	names := []string{"Head Office", "Downtown", "Uptown"}
	existing, err := branchRepo.GetAllBranches(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list branches for seeding")
		return
	}
	present := make(map[string]bool, len(existing))
	for _, b := range existing {
		present[b.Name] = true
	}

	for _, name := range names {
		if present[name] {
			continue
		}
		if _, err := branchRepo.CreateBranch(ctx, &models.Branch{Name: name}); err != nil {
			log.Error().Err(err).Str("branch", name).Msg("failed to seed branch")
			continue
		}
		log.Info().Str("branch", name).Msg("branch seeded")
	}
}

// SeedShifts inserts the standard day and evening shifts when absent.
func SeedShifts(shiftRepo *repository.ShiftRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := shiftRepo.GetAllShifts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list shifts for seeding")
		return
	}
	present := make(map[string]bool, len(existing))
	for _, s := range existing {
		present[s.Name] = true
	}

	shifts := []models.Shift{
		{Name: "Day", StartTime: "09:00", EndTime: "17:00", WorkdayRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"},
		{Name: "Evening", StartTime: "14:00", EndTime: "22:00", WorkdayRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA"},
	}
	for _, s := range shifts {
		if present[s.Name] {
			continue
		}
		shift := s
		if _, err := shiftRepo.CreateShift(ctx, &shift); err != nil {
			log.Error().Err(err).Str("shift", s.Name).Msg("failed to seed shift")
			continue
		}
		log.Info().Str("shift", s.Name).Msg("shift seeded")
	}
}
