package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/grindstone/internal/calendar"
	"github.com/alexanderramin/grindstone/internal/db"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/alexanderramin/grindstone/internal/repository"
	"github.com/google/uuid"
)

// DefaultDomainColor is used when a domain is created without one.
const DefaultDomainColor = "#64748b"

type seedDomain struct {
	Name  string
	Color string
	Order int
}

type seedTask struct {
	Title  string
	Points int
	Domain string
}

var seedDomains = []seedDomain{
	{Name: "Physical", Color: "#e11d48", Order: 1},
	{Name: "Financial", Color: "#059669", Order: 2},
	{Name: "Social", Color: "#2563eb", Order: 3},
	{Name: "Spiritual", Color: "#7c3aed", Order: 4},
}

var seedTasks = []seedTask{
	{Title: "Workout", Points: 5, Domain: "Physical"},
	{Title: "Drink Water", Points: 1, Domain: "Physical"},
	{Title: "No Spending", Points: 3, Domain: "Financial"},
	{Title: "Call Parents", Points: 5, Domain: "Social"},
	{Title: "Meditate", Points: 2, Domain: "Spiritual"},
}

type domainService struct {
	domains  repository.DomainRepo
	uow      db.UnitOfWork
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewDomainService(
	domains repository.DomainRepo,
	uow db.UnitOfWork,
	cal *calendar.Calendar,
	observers ...UseCaseObserver,
) DomainService {
	return &domainService{
		domains:  domains,
		uow:      uow,
		cal:      cal,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *domainService) List(ctx context.Context, includeInactive bool) ([]*domain.Domain, error) {
	return s.domains.List(ctx, !includeInactive)
}

// Create adds a domain ranked after the existing ones.
func (s *domainService) Create(ctx context.Context, name, color string) (d *domain.Domain, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name}
	defer func() {
		observe(ctx, s.observer, "create-domain", startedAt, fields, &err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("domain name is required")
	}
	if color == "" {
		color = DefaultDomainColor
	}
	n, err := s.domains.Count(ctx)
	if err != nil {
		return nil, err
	}
	d = &domain.Domain{
		ID:       uuid.New().String(),
		Name:     name,
		Color:    color,
		Order:    n + 1,
		IsActive: true,
	}
	if err = s.domains.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deactivate hides a domain. Its tasks and ledger entries are kept.
func (s *domainService) Deactivate(ctx context.Context, name string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name}
	defer func() {
		observe(ctx, s.observer, "deactivate-domain", startedAt, fields, &err)
	}()

	d, err := s.domains.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if !d.IsActive {
		return nil
	}
	d.IsActive = false
	return s.domains.Update(ctx, d)
}

// Seed installs the four starter domains and five sample tasks. Without
// reset it only fills in what is missing. With reset it first deletes every
// task (and so the ledger) and deactivates domains outside the starter set.
func (s *domainService) Seed(ctx context.Context, reset bool) (res *SeedResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"reset": reset}
	defer func() {
		if res != nil {
			fields["domains"] = res.Domains
			fields["tasks"] = res.Tasks
		}
		observe(ctx, s.observer, "seed", startedAt, fields, &err)
	}()

	now := s.cal.Now().UTC()
	res = &SeedResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDomains := repository.NewSQLiteDomainRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if reset {
			if err := txTasks.DeleteAll(ctx); err != nil {
				return err
			}
			if err := deactivateNonSeed(ctx, txDomains); err != nil {
				return err
			}
		}

		byName := make(map[string]*domain.Domain, len(seedDomains))
		for _, sd := range seedDomains {
			d, created, err := ensureSeedDomain(ctx, txDomains, sd)
			if err != nil {
				return err
			}
			if created {
				res.Domains++
			}
			byName[sd.Name] = d
		}

		for i, st := range seedTasks {
			d := byName[st.Domain]
			existing, err := txTasks.ListByDomain(ctx, d.ID)
			if err != nil {
				return err
			}
			if hasTitle(existing, st.Title) {
				continue
			}
			// Stagger creation so list order follows the catalog.
			createdAt := now.Add(time.Duration(i) * time.Millisecond)
			t := &domain.Task{
				ID:        uuid.New().String(),
				DomainID:  d.ID,
				Title:     st.Title,
				IsActive:  true,
				Points:    st.Points,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}
			t.ApplyDefaults()
			if err := txTasks.Create(ctx, t); err != nil {
				return err
			}
			res.Tasks++
		}
		return nil
	})
	if err != nil {
		res = nil
		return nil, fmt.Errorf("seeding: %w", err)
	}
	return res, nil
}

func ensureSeedDomain(ctx context.Context, repo *repository.SQLiteDomainRepo, sd seedDomain) (*domain.Domain, bool, error) {
	d, err := repo.GetByName(ctx, sd.Name)
	if err == nil {
		if !d.IsActive {
			d.IsActive = true
			if err := repo.Update(ctx, d); err != nil {
				return nil, false, err
			}
		}
		return d, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	d = &domain.Domain{
		ID:       uuid.New().String(),
		Name:     sd.Name,
		Color:    sd.Color,
		Order:    sd.Order,
		IsActive: true,
	}
	if err := repo.Create(ctx, d); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

func deactivateNonSeed(ctx context.Context, repo *repository.SQLiteDomainRepo) error {
	all, err := repo.List(ctx, true)
	if err != nil {
		return err
	}
	for _, d := range all {
		if isSeedDomain(d.Name) {
			continue
		}
		d.IsActive = false
		if err := repo.Update(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func isSeedDomain(name string) bool {
	for _, sd := range seedDomains {
		if strings.EqualFold(sd.Name, name) {
			return true
		}
	}
	return false
}

func hasTitle(tasks []*domain.Task, title string) bool {
	for _, t := range tasks {
		if strings.EqualFold(t.Title, title) {
			return true
		}
	}
	return false
}
