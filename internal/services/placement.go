package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"launch-tms/internal/authz"
	"launch-tms/internal/repositories"
	apperrors "launch-tms/pkg/errors"
)

// placement is a fully hydrated, chain-consistent organizational assignment.
// Every row written with these keys satisfies the invariant that direct
// column equality matches walking the tree, which is what makes the scoping
// predicates sound.
type placement struct {
	CompanyID    uuid.UUID
	DivisionID   *uuid.UUID
	DepartmentID *uuid.UUID
	TerminalID   *uuid.UUID
}

func (pl placement) scopeKeys() authz.ScopeKeys {
	companyID := pl.CompanyID
	return authz.ScopeKeys{
		CompanyID:    &companyID,
		DivisionID:   pl.DivisionID,
		DepartmentID: pl.DepartmentID,
		TerminalID:   pl.TerminalID,
	}
}

type PlacementResolver struct {
	divisionRepo   repositories.DivisionRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	terminalRepo   repositories.TerminalRepositoryInterface
}

func NewPlacementResolver(
	divisionRepo repositories.DivisionRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	terminalRepo repositories.TerminalRepositoryInterface,
) *PlacementResolver {
	return &PlacementResolver{
		divisionRepo:   divisionRepo,
		departmentRepo: departmentRepo,
		terminalRepo:   terminalRepo,
	}
}

// resolve validates a requested placement against the organizational tree and
// fills missing ancestors from the deepest provided unit. A unit that does
// not exist or sits under a different parent than requested is a client
// error, never a silent repair.
func (r *PlacementResolver) resolve(ctx context.Context, companyID uuid.UUID, divisionID, departmentID, terminalID *uuid.UUID) (*placement, error) {
	pl := &placement{CompanyID: companyID, DivisionID: divisionID, DepartmentID: departmentID, TerminalID: terminalID}

	if terminalID != nil {
		term, err := r.terminalRepo.FindTerminal(ctx, *terminalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewBadRequestError("terminal does not exist")
			}
			return nil, err
		}
		if departmentID != nil && *departmentID != term.DepartmentID {
			return nil, apperrors.NewBadRequestError("terminal is not under the given department")
		}
		if divisionID != nil && *divisionID != term.DivisionID {
			return nil, apperrors.NewBadRequestError("terminal is not under the given division")
		}
		if term.CompanyID != companyID {
			return nil, apperrors.NewBadRequestError("terminal belongs to another company")
		}
		pl.DepartmentID = &term.DepartmentID
		pl.DivisionID = &term.DivisionID
		return pl, nil
	}

	if departmentID != nil {
		dep, err := r.departmentRepo.FindDepartment(ctx, *departmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewBadRequestError("department does not exist")
			}
			return nil, err
		}
		if divisionID != nil && *divisionID != dep.DivisionID {
			return nil, apperrors.NewBadRequestError("department is not under the given division")
		}
		if dep.CompanyID != companyID {
			return nil, apperrors.NewBadRequestError("department belongs to another company")
		}
		pl.DivisionID = &dep.DivisionID
		return pl, nil
	}

	if divisionID != nil {
		div, err := r.divisionRepo.FindDivision(ctx, *divisionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewBadRequestError("division does not exist")
			}
			return nil, err
		}
		if div.CompanyID != companyID {
			return nil, apperrors.NewBadRequestError("division belongs to another company")
		}
	}

	return pl, nil
}
