package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "launch-tms/pkg/errors"
)

func TestPlacementResolve_TerminalFillsAncestors(t *testing.T) {
	r := newOrgPlacementResolver()

	pl, err := r.resolve(context.Background(), companyA, nil, nil, uuidPtr(terminalATL))
	require.NoError(t, err)
	require.NotNil(t, pl.DivisionID)
	require.NotNil(t, pl.DepartmentID)
	assert.Equal(t, divisionSE, *pl.DivisionID)
	assert.Equal(t, deptGAOps, *pl.DepartmentID)
	assert.Equal(t, terminalATL, *pl.TerminalID)
}

func TestPlacementResolve_DepartmentFillsDivision(t *testing.T) {
	r := newOrgPlacementResolver()

	pl, err := r.resolve(context.Background(), companyA, nil, uuidPtr(deptGAOps), nil)
	require.NoError(t, err)
	require.NotNil(t, pl.DivisionID)
	assert.Equal(t, divisionSE, *pl.DivisionID)
	assert.Nil(t, pl.TerminalID)
}

func TestPlacementResolve_CrossCompanyRejected(t *testing.T) {
	r := newOrgPlacementResolver()

	// terminal ATL belongs to company A
	_, err := r.resolve(context.Background(), companyB, nil, nil, uuidPtr(terminalATL))
	requireBadRequest(t, err)

	// division NW belongs to company B
	_, err = r.resolve(context.Background(), companyA, uuidPtr(divisionNW), nil, nil)
	requireBadRequest(t, err)
}

func TestPlacementResolve_MismatchedChainRejected(t *testing.T) {
	r := newOrgPlacementResolver()

	// claiming terminal ATL under division NW contradicts the tree
	_, err := r.resolve(context.Background(), companyA, uuidPtr(divisionNW), nil, uuidPtr(terminalATL))
	requireBadRequest(t, err)
}

func TestPlacementResolve_UnknownUnitRejected(t *testing.T) {
	r := newOrgPlacementResolver()

	_, err := r.resolve(context.Background(), companyA, nil, nil, uuidPtr(uuid.New()))
	requireBadRequest(t, err)

	_, err = r.resolve(context.Background(), companyA, nil, uuidPtr(uuid.New()), nil)
	requireBadRequest(t, err)
}

func TestPlacementResolve_CompanyOnly(t *testing.T) {
	r := newOrgPlacementResolver()

	pl, err := r.resolve(context.Background(), companyA, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, companyA, pl.CompanyID)
	assert.Nil(t, pl.DivisionID)
	assert.Nil(t, pl.DepartmentID)
	assert.Nil(t, pl.TerminalID)
}

func requireBadRequest(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok, "expected HttpError, got %T: %v", err, err)
	assert.Equal(t, 400, httpErr.Code)
}
