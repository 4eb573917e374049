package usecase

import (
	"context"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// fetchAll collects every page of one results endpoint. The first page is
// returned as well for its scan info.
func fetchAll[T any](ctx context.Context, fetch func(context.Context, *model.ResultsQuery) (*model.ResultPage[T], error), query model.ResultsQuery) ([]T, *model.ResultPage[T], error) {
	var items []T
	var first *model.ResultPage[T]

	for page := 1; ; page++ {
		if ctx.Err() != nil {
			return nil, nil, goerr.Wrap(types.ErrScanCancelled, "fetching interrupted", goerr.V("page", page))
		}

		q := query
		q.PageNumber = page
		resp, err := fetch(ctx, &q)
		if err != nil {
			return nil, nil, err
		}
		if first == nil {
			first = resp
		}

		items = append(items, resp.Vulnerabilities...)
		if len(resp.Vulnerabilities) == 0 ||
			len(items) >= resp.Total ||
			len(resp.Vulnerabilities) < query.PageSize {
			break
		}
	}

	return items, first, nil
}

// fetchResults fetches SAST, IaC and SCA results in that order.
func (x *UseCase) fetchResults(ctx context.Context, projectID types.ProjectID, branch types.BranchName) (*model.Results, error) {
	cd := x.clients.CybeDefend()
	query := model.ResultsQuery{
		ProjectID:  projectID,
		Branch:     branch.ForRequest(),
		PageSize:   x.pageSize,
		Severities: x.severities,
	}

	sastItems, sastPage, err := fetchAll(ctx, cd.GetSASTResults, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch SAST results", goerr.V("project_id", projectID))
	}
	x.progress(ctx, "Fetched SAST results")

	iacItems, _, err := fetchAll(ctx, cd.GetIaCResults, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch IaC results", goerr.V("project_id", projectID))
	}
	x.progress(ctx, "Fetched IaC results")

	scaItems, _, err := fetchAll(ctx, cd.GetSCAResults, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch SCA results", goerr.V("project_id", projectID))
	}
	x.progress(ctx, "Fetched SCA results")

	results := &model.Results{
		ScanState: types.ScanStateCompleted,
		Branch:    branch.ForRequest(),
	}
	if sastPage != nil && sastPage.ScanProjectInfo != nil && sastPage.ScanProjectInfo.State != "" {
		results.ScanState = types.NormalizeScanState(sastPage.ScanProjectInfo.State)
	}

	if results.SAST, err = model.Unify(sastItems); err != nil {
		return nil, err
	}
	if results.IaC, err = model.Unify(iacItems); err != nil {
		return nil, err
	}
	if results.SCA, err = model.Unify(scaItems); err != nil {
		return nil, err
	}

	return results, nil
}
