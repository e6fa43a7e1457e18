package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vendra-hq/vendra-sdk/modules/billing/domain/entities/planapplication"
	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/repo"
	"github.com/vendra-hq/vendra-sdk/pkg/scope"
	"github.com/vendra-hq/vendra-sdk/pkg/unique"
)

// planApplicationChain is the single-hop case: the plan itself carries the
// tenant id, and an archived plan hides its subscriptions.
var planApplicationChain = scope.Chain{
	Leaf: "plan_applications pa",
	Links: []scope.Link{
		{Table: "plans p", On: "p.id = pa.plan_id", Active: "p.is_active"},
	},
	TenantColumn: "p.tenant_id",
}

var planApplicationSort = pagination.SortSpec{
	Allowed: map[string]string{
		"created_at":      "pa.created_at",
		"updated_at":      "pa.updated_at",
		"application_ref": "pa.application_ref",
	},
	DefaultColumn: "pa.created_at",
	DefaultDesc:   true,
	TieBreak:      "pa.id",
}

const planApplicationColumns = "pa.id, pa.plan_id, pa.application_ref, pa.status, pa.created_at, pa.updated_at, p.name"

type PlanApplicationRepository struct{}

func NewPlanApplicationRepository() planapplication.Repository {
	return &PlanApplicationRepository{}
}

func (r *PlanApplicationRepository) GetByID(ctx context.Context, id int64) (*planapplication.PlanApplication, error) {
	out, err := r.queryPlanApplications(ctx, planApplicationChain.Query(planApplicationColumns, "pa.id = $2"), id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, planapplication.ErrNotFound
	}
	return out[0], nil
}

func (r *PlanApplicationRepository) GetPaginated(
	ctx context.Context,
	params planapplication.FindParams,
	pg pagination.Params,
) ([]*planapplication.PlanApplication, int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	var filters []repo.Filter
	if params.PlanID != nil {
		filters = append(filters, repo.Eq("pa.plan_id", *params.PlanID))
	}
	if params.Status != nil {
		filters = append(filters, repo.Eq("pa.status", *params.Status))
	}
	if params.CreatedFrom != nil {
		filters = append(filters, repo.Gte("pa.created_at", *params.CreatedFrom))
	}
	if params.CreatedTo != nil {
		filters = append(filters, repo.Lte("pa.created_at", *params.CreatedTo))
	}

	where, args := repo.BuildWhere(filters, 2)
	var conditions []string
	if where != "" {
		conditions = append(conditions, where)
	}
	queryArgs := append([]any{tenantID}, args...)

	var total int64
	if err := tx.QueryRow(ctx, planApplicationChain.Query("COUNT(*)", conditions...), queryArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count plan applications")
	}

	query := fmt.Sprintf(
		"%s %s LIMIT %d OFFSET %d",
		planApplicationChain.Query(planApplicationColumns, conditions...),
		planApplicationSort.OrderClause(pg),
		pg.Limit,
		pg.Offset(),
	)
	out, err := r.queryPlanApplicationsTx(ctx, tx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PlanApplicationRepository) Create(ctx context.Context, pa *planapplication.PlanApplication) (*planapplication.PlanApplication, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO plan_applications (plan_id, application_ref, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRow(
		ctx, query,
		pa.PlanID, pa.ApplicationRef, pa.Status, pa.CreatedAt, pa.UpdatedAt,
	).Scan(&pa.ID); err != nil {
		return nil, unique.MapPgError(planapplication.Resource, err)
	}
	return r.GetByID(ctx, pa.ID)
}

func (r *PlanApplicationRepository) Update(ctx context.Context, pa *planapplication.PlanApplication) (*planapplication.PlanApplication, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE plan_applications
		SET application_ref = $1, status = $2, updated_at = $3
		WHERE id = $4
	`
	tag, err := tx.Exec(ctx, query, pa.ApplicationRef, pa.Status, pa.UpdatedAt, pa.ID)
	if err != nil {
		return nil, unique.MapPgError(planapplication.Resource, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, planapplication.ErrNotFound
	}
	return r.GetByID(ctx, pa.ID)
}

func (r *PlanApplicationRepository) queryPlanApplications(ctx context.Context, query string, args ...any) ([]*planapplication.PlanApplication, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryPlanApplicationsTx(ctx, tx, query, append([]any{tenantID}, args...)...)
}

func (r *PlanApplicationRepository) queryPlanApplicationsTx(ctx context.Context, tx repo.Tx, query string, args ...any) ([]*planapplication.PlanApplication, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query plan applications")
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*planapplication.PlanApplication, error) {
		var pa planapplication.PlanApplication
		err := row.Scan(
			&pa.ID, &pa.PlanID, &pa.ApplicationRef, &pa.Status,
			&pa.CreatedAt, &pa.UpdatedAt, &pa.PlanName,
		)
		return &pa, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan plan applications")
	}
	return out, nil
}
