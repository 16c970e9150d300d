package advising

import (
	"context"
	"fmt"
)

// Planner implements the advising operations the agent's tools expose.
// Expected domain conditions (unknown course, already enrolled, credit
// limit) come back as payloads with Success=false; the error return is
// reserved for store faults.
type Planner struct {
	Store       Store
	CreditLimit int
}

func NewPlanner(store Store, creditLimit int) *Planner {
	if creditLimit <= 0 {
		creditLimit = DefaultCreditLimit
	}
	return &Planner{Store: store, CreditLimit: creditLimit}
}

// CatalogPayload lists the courses open for registration.
type CatalogPayload struct {
	Courses []Course `json:"courses"`
	Count   int      `json:"count"`
}

// SchedulePayload is the student's current enrollment.
type SchedulePayload struct {
	Courses      []Course `json:"courses"`
	TotalCredits int      `json:"total_credits"`
}

// CreditLoadPayload reports the schedule's credit position.
type CreditLoadPayload struct {
	TotalCredits int `json:"total_credits"`
	CreditLimit  int `json:"credit_limit"`
	Remaining    int `json:"remaining"`
}

// MutationPayload is the outcome of an enrollment mutation. Success=false
// with a message is a normal, recoverable condition shown to the model.
type MutationPayload struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	Course       *Course `json:"course,omitempty"`
	TotalCredits int     `json:"total_credits"`
}

func (p *Planner) ListCatalog(ctx context.Context) (CatalogPayload, error) {
	courses, err := p.Store.Catalog(ctx)
	if err != nil {
		return CatalogPayload{}, err
	}
	return CatalogPayload{Courses: courses, Count: len(courses)}, nil
}

func (p *Planner) GetSchedule(ctx context.Context) (SchedulePayload, error) {
	courses, err := p.Store.Schedule(ctx)
	if err != nil {
		return SchedulePayload{}, err
	}
	return SchedulePayload{Courses: courses, TotalCredits: sumCredits(courses)}, nil
}

func (p *Planner) CreditLoad(ctx context.Context) (CreditLoadPayload, error) {
	courses, err := p.Store.Schedule(ctx)
	if err != nil {
		return CreditLoadPayload{}, err
	}
	total := sumCredits(courses)
	return CreditLoadPayload{
		TotalCredits: total,
		CreditLimit:  p.CreditLimit,
		Remaining:    p.CreditLimit - total,
	}, nil
}

func (p *Planner) AddCourse(ctx context.Context, code string) (MutationPayload, error) {
	course, ok, err := p.Store.Lookup(ctx, code)
	if err != nil {
		return MutationPayload{}, err
	}
	total, err := p.scheduleCredits(ctx)
	if err != nil {
		return MutationPayload{}, err
	}
	if !ok {
		return MutationPayload{
			Message:      fmt.Sprintf("no course with code %q in the catalog", code),
			TotalCredits: total,
		}, nil
	}
	enrolled, err := p.Store.Enrolled(ctx, code)
	if err != nil {
		return MutationPayload{}, err
	}
	if enrolled {
		return MutationPayload{
			Message:      fmt.Sprintf("already enrolled in %s", code),
			Course:       &course,
			TotalCredits: total,
		}, nil
	}
	if total+course.Credits > p.CreditLimit {
		return MutationPayload{
			Message: fmt.Sprintf("adding %s (%d credits) would exceed the %d-credit limit (currently %d)",
				code, course.Credits, p.CreditLimit, total),
			Course:       &course,
			TotalCredits: total,
		}, nil
	}
	if err := p.Store.Enroll(ctx, code); err != nil {
		return MutationPayload{}, err
	}
	return MutationPayload{
		Success:      true,
		Message:      fmt.Sprintf("enrolled in %s: %s", course.Code, course.Title),
		Course:       &course,
		TotalCredits: total + course.Credits,
	}, nil
}

func (p *Planner) DropCourse(ctx context.Context, code string) (MutationPayload, error) {
	total, err := p.scheduleCredits(ctx)
	if err != nil {
		return MutationPayload{}, err
	}
	enrolled, err := p.Store.Enrolled(ctx, code)
	if err != nil {
		return MutationPayload{}, err
	}
	if !enrolled {
		return MutationPayload{
			Message:      fmt.Sprintf("not enrolled in %q, nothing to drop", code),
			TotalCredits: total,
		}, nil
	}
	course, _, err := p.Store.Lookup(ctx, code)
	if err != nil {
		return MutationPayload{}, err
	}
	if err := p.Store.Drop(ctx, code); err != nil {
		return MutationPayload{}, err
	}
	return MutationPayload{
		Success:      true,
		Message:      fmt.Sprintf("dropped %s: %s", course.Code, course.Title),
		Course:       &course,
		TotalCredits: total - course.Credits,
	}, nil
}

func (p *Planner) scheduleCredits(ctx context.Context) (int, error) {
	courses, err := p.Store.Schedule(ctx)
	if err != nil {
		return 0, err
	}
	return sumCredits(courses), nil
}

func sumCredits(courses []Course) int {
	total := 0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}
