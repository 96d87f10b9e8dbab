package services

import (
	"context"
	"fmt"
	"log/slog"

	"daftar/internal/core"
)

// ResetConfirmationPhrase must accompany a database reset request.
const ResetConfirmationPhrase = "DELETE ALL DATA"

// Outcome is the per-id result of a bulk lifecycle operation. A failed id
// never aborts its siblings.
type Outcome struct {
	ID  string
	Err error
}

// LifecycleService moves records through active, soft-deleted, and
// permanently-deleted states. Permanent deletion is gated by the stored PIN;
// recovery is only possible from the soft-deleted state.
//
// The PIN lives in a plain stored setting rather than any account-backed
// authorization, which is a weak boundary kept for compatibility with the
// existing deployment.
type LifecycleService struct {
	expenses  ExpenseStore
	employees EmployeeStore
	settings  SettingsReader
	resetter  Resetter

	// onMutate runs after any successful state change, for cache invalidation.
	onMutate func()
}

func NewLifecycleService(expenses ExpenseStore, employees EmployeeStore, settings SettingsReader, resetter Resetter) *LifecycleService {
	return &LifecycleService{
		expenses:  expenses,
		employees: employees,
		settings:  settings,
		resetter:  resetter,
	}
}

// OnMutate registers a hook invoked after every successful mutation.
func (s *LifecycleService) OnMutate(fn func()) {
	s.onMutate = fn
}

// SoftDelete flags each record deleted. Already-deleted records are a state
// no-op. Each id is one independent store round-trip.
func (s *LifecycleService) SoftDelete(ctx context.Context, recordType string, ids []string) ([]Outcome, error) {
	return s.setDeleted(ctx, recordType, ids, true)
}

// Recover clears the deleted flag, the symmetric inverse of SoftDelete.
func (s *LifecycleService) Recover(ctx context.Context, recordType string, ids []string) ([]Outcome, error) {
	return s.setDeleted(ctx, recordType, ids, false)
}

func (s *LifecycleService) setDeleted(ctx context.Context, recordType string, ids []string, deleted bool) ([]Outcome, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids given", core.ErrValidation)
	}
	setter, err := s.deletedSetter(recordType)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(ids))
	mutated := false
	for _, id := range ids {
		opErr := setter(ctx, id, deleted)
		if opErr != nil {
			slog.WarnContext(ctx, "Lifecycle transition failed",
				"record_type", recordType, "id", id, "deleted", deleted, "error", opErr)
		} else {
			mutated = true
		}
		outcomes = append(outcomes, Outcome{ID: id, Err: opErr})
	}
	if mutated {
		s.notifyMutate()
	}
	return outcomes, nil
}

// PermanentDelete verifies the PIN, then issues one unconditional delete per
// id. On PIN mismatch nothing is mutated and the caller re-prompts. The
// operation is irreversible; the soft-delete-first flow is a UI policy, not
// enforced here.
func (s *LifecycleService) PermanentDelete(ctx context.Context, recordType string, ids []string, pin string) ([]Outcome, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids given", core.ErrValidation)
	}
	deleter, err := s.permanentDeleter(recordType)
	if err != nil {
		return nil, err
	}
	if err := s.verifyPIN(ctx, pin); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(ids))
	mutated := false
	for _, id := range ids {
		opErr := deleter(ctx, id)
		if opErr != nil {
			slog.WarnContext(ctx, "Permanent delete failed",
				"record_type", recordType, "id", id, "error", opErr)
		} else {
			mutated = true
			slog.InfoContext(ctx, "Record permanently deleted",
				"record_type", recordType, "id", id)
		}
		outcomes = append(outcomes, Outcome{ID: id, Err: opErr})
	}
	if mutated {
		s.notifyMutate()
	}
	return outcomes, nil
}

// ResetAll wipes every entity table. It refuses to run without the exact
// confirmation phrase and a matching PIN.
func (s *LifecycleService) ResetAll(ctx context.Context, phrase, pin string) error {
	if phrase != ResetConfirmationPhrase {
		return fmt.Errorf("%w: expected %q", core.ErrConfirmation, ResetConfirmationPhrase)
	}
	if err := s.verifyPIN(ctx, pin); err != nil {
		return err
	}
	if s.resetter == nil {
		return fmt.Errorf("%w: reset not available", core.ErrValidation)
	}
	if err := s.resetter.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge all: %w", err)
	}
	slog.WarnContext(ctx, "Database reset executed")
	s.notifyMutate()
	return nil
}

func (s *LifecycleService) verifyPIN(ctx context.Context, pin string) error {
	stored, err := s.settings.GetSetting(ctx, SettingDeletePIN)
	if err != nil {
		return fmt.Errorf("read stored pin: %w", err)
	}
	if stored == "" {
		return fmt.Errorf("%w: no deletion pin configured", core.ErrValidation)
	}
	if pin != stored {
		return core.ErrPINMismatch
	}
	return nil
}

func (s *LifecycleService) deletedSetter(recordType string) (func(context.Context, string, bool) error, error) {
	switch recordType {
	case core.RecordTypeExpense:
		return s.expenses.SetExpenseDeleted, nil
	case core.RecordTypeEmployee:
		return s.employees.SetEmployeeDeleted, nil
	default:
		return nil, fmt.Errorf("%w: record type %q", core.ErrValidation, recordType)
	}
}

func (s *LifecycleService) permanentDeleter(recordType string) (func(context.Context, string) error, error) {
	switch recordType {
	case core.RecordTypeExpense:
		return s.expenses.DeleteExpense, nil
	case core.RecordTypeEmployee:
		return s.employees.DeleteEmployee, nil
	default:
		return nil, fmt.Errorf("%w: record type %q", core.ErrValidation, recordType)
	}
}

func (s *LifecycleService) notifyMutate() {
	if s.onMutate != nil {
		s.onMutate()
	}
}
