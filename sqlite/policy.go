package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

var _ controlplane.PolicyService = (*PolicyService)(nil)

// PolicyService manages policy definitions and assignments in sqlite. The
// opaque rule and parameter documents are stored as JSON text columns.
type PolicyService struct {
	store *SqlStore
	idGen platform.IDGenerator
	now   func() time.Time
}

func NewPolicyService(store *SqlStore, idGen platform.IDGenerator) *PolicyService {
	return &PolicyService{
		store: store,
		idGen: idGen,
		now:   time.Now,
	}
}

type policyDefinitionRow struct {
	ID          platform.ID `db:"id"`
	Name        string      `db:"name"`
	DisplayName string      `db:"display_name"`
	Description string      `db:"description"`
	Mode        string      `db:"mode"`
	Rule        string      `db:"rule"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r policyDefinitionRow) toPolicyDefinition() (*controlplane.PolicyDefinition, error) {
	pd := &controlplane.PolicyDefinition{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Mode:        controlplane.PolicyMode(r.Mode),
	}
	pd.CreatedAt = r.CreatedAt
	pd.UpdatedAt = r.UpdatedAt

	if err := json.Unmarshal([]byte(r.Rule), &pd.Rule); err != nil {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  "corrupt policy rule document",
			Err:  err,
		}
	}
	return pd, nil
}

type policyAssignmentRow struct {
	ID          platform.ID `db:"id"`
	PolicyID    platform.ID `db:"policy_id"`
	Scope       string      `db:"scope"`
	DisplayName string      `db:"display_name"`
	Parameters  string      `db:"parameters"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r policyAssignmentRow) toPolicyAssignment() (*controlplane.PolicyAssignment, error) {
	pa := &controlplane.PolicyAssignment{
		ID:          r.ID,
		PolicyID:    r.PolicyID,
		Scope:       r.Scope,
		DisplayName: r.DisplayName,
	}
	pa.CreatedAt = r.CreatedAt
	pa.UpdatedAt = r.UpdatedAt

	if err := json.Unmarshal([]byte(r.Parameters), &pa.Parameters); err != nil {
		return nil, &errors.Error{
			Code: errors.EInternal,
			Msg:  "corrupt policy parameter document",
			Err:  err,
		}
	}
	return pa, nil
}

func errPolicyDefinitionNotFound(id platform.ID) error {
	return &errors.Error{
		Code: errors.ENotFound,
		Msg:  fmt.Sprintf("policy definition %s not found", id),
	}
}

func (s *PolicyService) FindPolicyDefinitionByID(ctx context.Context, id platform.ID) (*controlplane.PolicyDefinition, error) {
	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	var r policyDefinitionRow
	err := s.store.DB.GetContext(ctx, &r, `SELECT id, name, display_name, description, mode, rule, created_at, updated_at FROM policy_definitions WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, errPolicyDefinitionNotFound(id)
	}
	if err != nil {
		return nil, errDatabase(err, "sqlite.FindPolicyDefinitionByID")
	}
	return r.toPolicyDefinition()
}

func (s *PolicyService) FindPolicyDefinitions(ctx context.Context, opt ...controlplane.FindOptions) ([]*controlplane.PolicyDefinition, int, error) {
	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	q := `SELECT id, name, display_name, description, mode, rule, created_at, updated_at FROM policy_definitions ORDER BY name`
	args := []interface{}{}
	if len(opt) > 0 && opt[0].Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, opt[0].Limit, opt[0].Offset)
	}

	rows := []policyDefinitionRow{}
	if err := s.store.DB.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, 0, errDatabase(err, "sqlite.FindPolicyDefinitions")
	}

	pds := make([]*controlplane.PolicyDefinition, 0, len(rows))
	for _, r := range rows {
		pd, err := r.toPolicyDefinition()
		if err != nil {
			return nil, 0, err
		}
		pds = append(pds, pd)
	}
	return pds, len(pds), nil
}

func (s *PolicyService) CreatePolicyDefinition(ctx context.Context, pd *controlplane.PolicyDefinition) error {
	if pd.Name == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "policy definition name cannot be empty",
		}
	}
	if pd.Mode == "" {
		pd.Mode = controlplane.PolicyModeAll
	}
	if err := pd.Mode.Valid(); err != nil {
		return err
	}
	if pd.Rule == nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "policy definition requires a rule document",
		}
	}

	rule, err := json.Marshal(pd.Rule)
	if err != nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to encode policy rule document",
			Err:  err,
		}
	}

	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	var count int
	if err := s.store.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM policy_definitions WHERE name = ?`, pd.Name); err != nil {
		return errDatabase(err, "sqlite.CreatePolicyDefinition")
	}
	if count > 0 {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("policy definition with name %s already exists", pd.Name),
		}
	}

	pd.ID = s.idGen.ID()
	now := s.now()
	pd.SetCreatedAt(now)
	pd.SetUpdatedAt(now)

	_, err = s.store.DB.ExecContext(ctx,
		`INSERT INTO policy_definitions (id, name, display_name, description, mode, rule, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pd.ID, pd.Name, pd.DisplayName, pd.Description, string(pd.Mode), string(rule), pd.CreatedAt, pd.UpdatedAt)
	if err != nil {
		return errDatabase(err, "sqlite.CreatePolicyDefinition")
	}
	return nil
}

func (s *PolicyService) DeletePolicyDefinition(ctx context.Context, id platform.ID) error {
	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	var assigned int
	if err := s.store.DB.GetContext(ctx, &assigned, `SELECT COUNT(*) FROM policy_assignments WHERE policy_id = ?`, id); err != nil {
		return errDatabase(err, "sqlite.DeletePolicyDefinition")
	}
	if assigned > 0 {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  "policy definition has active assignments",
		}
	}

	res, err := s.store.DB.ExecContext(ctx, `DELETE FROM policy_definitions WHERE id = ?`, id)
	if err != nil {
		return errDatabase(err, "sqlite.DeletePolicyDefinition")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errDatabase(err, "sqlite.DeletePolicyDefinition")
	}
	if n == 0 {
		return errPolicyDefinitionNotFound(id)
	}
	return nil
}

func (s *PolicyService) AssignPolicy(ctx context.Context, pa *controlplane.PolicyAssignment) error {
	if pa.Scope == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "policy assignment scope cannot be empty",
		}
	}

	params := pa.Parameters
	if params == nil {
		params = map[string]interface{}{}
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to encode policy parameter document",
			Err:  err,
		}
	}

	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	var count int
	if err := s.store.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM policy_definitions WHERE id = ?`, pa.PolicyID); err != nil {
		return errDatabase(err, "sqlite.AssignPolicy")
	}
	if count == 0 {
		return errPolicyDefinitionNotFound(pa.PolicyID)
	}

	pa.ID = s.idGen.ID()
	now := s.now()
	pa.SetCreatedAt(now)
	pa.SetUpdatedAt(now)

	_, err = s.store.DB.ExecContext(ctx,
		`INSERT INTO policy_assignments (id, policy_id, scope, display_name, parameters, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pa.ID, pa.PolicyID, pa.Scope, pa.DisplayName, string(encoded), pa.CreatedAt, pa.UpdatedAt)
	if err != nil {
		return errDatabase(err, "sqlite.AssignPolicy")
	}
	return nil
}

// FindPolicyAssignments returns every assignment whose scope contains path,
// ordered from the root of the hierarchy down. An assignment at scope S
// applies to S itself and everything below it.
func (s *PolicyService) FindPolicyAssignments(ctx context.Context, path string) ([]*controlplane.PolicyAssignment, error) {
	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	path = strings.TrimSuffix(path, "/")

	rows := []policyAssignmentRow{}
	err := s.store.DB.SelectContext(ctx, &rows,
		`SELECT id, policy_id, scope, display_name, parameters, created_at, updated_at
		 FROM policy_assignments
		 WHERE ? = scope OR ? LIKE scope || '/%'
		 ORDER BY length(scope), scope`,
		path, path)
	if err != nil {
		return nil, errDatabase(err, "sqlite.FindPolicyAssignments")
	}

	pas := make([]*controlplane.PolicyAssignment, 0, len(rows))
	for _, r := range rows {
		pa, err := r.toPolicyAssignment()
		if err != nil {
			return nil, err
		}
		pas = append(pas, pa)
	}
	return pas, nil
}

func (s *PolicyService) DeletePolicyAssignment(ctx context.Context, id platform.ID) error {
	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	res, err := s.store.DB.ExecContext(ctx, `DELETE FROM policy_assignments WHERE id = ?`, id)
	if err != nil {
		return errDatabase(err, "sqlite.DeletePolicyAssignment")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errDatabase(err, "sqlite.DeletePolicyAssignment")
	}
	if n == 0 {
		return &errors.Error{
			Code: errors.ENotFound,
			Msg:  fmt.Sprintf("policy assignment %s not found", id),
		}
	}
	return nil
}
