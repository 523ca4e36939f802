// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tools

import "context"

func (p *Provider) registerJobTools() {
	p.register(protocolTool(
		"list_jobs",
		"List jobs in the workspace.",
		objectSchema(map[string]any{
			"limit":      intProp("Maximum number of jobs to return"),
			"page_token": stringProp("Pagination token from a previous call"),
		}, nil),
	), p.handleListJobs)

	p.register(protocolTool(
		"get_job",
		"Get a job's definition.",
		objectSchema(map[string]any{
			"job_id": intProp("Job ID"),
		}, []string{"job_id"}),
	), p.handleGetJob)

	p.register(protocolTool(
		"run_job_now",
		"Trigger an immediate run of a job.",
		objectSchema(map[string]any{
			"job_id": intProp("Job ID to run"),
		}, []string{"job_id"}),
	), p.handleRunJobNow)

	p.register(protocolTool(
		"list_job_runs",
		"List recent runs of a job, or of all jobs when job_id is omitted.",
		objectSchema(map[string]any{
			"job_id": intProp("Job ID to filter runs by"),
			"limit":  intProp("Maximum number of runs to return"),
		}, nil),
	), p.handleListJobRuns)

	p.register(protocolTool(
		"list_pipelines",
		"List Delta Live Tables pipelines.",
		objectSchema(map[string]any{
			"max_results": intProp("Maximum number of pipelines to return"),
		}, nil),
	), p.handleListPipelines)

	p.register(protocolTool(
		"get_pipeline",
		"Get a pipeline's status.",
		objectSchema(map[string]any{
			"pipeline_id": stringProp("Pipeline ID"),
		}, []string{"pipeline_id"}),
	), p.handleGetPipeline)
}

func (p *Provider) handleListJobs(ctx context.Context, args map[string]any) (map[string]any, error) {
	resp, err := p.client.ListJobs(ctx, argInt(args, "limit", 0), argString(args, "page_token"))
	if err != nil {
		return fail("failed to list jobs: %v", err), nil
	}

	items := make([]map[string]any, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		item := map[string]any{
			"job_id":  j.JobID,
			"creator": j.CreatorUserName,
		}
		if j.Settings != nil {
			item["name"] = j.Settings.Name
		}
		items = append(items, item)
	}

	payload := map[string]any{"jobs": items, "count": len(items)}
	if resp.NextPageToken != "" {
		payload["next_page_token"] = resp.NextPageToken
	}
	return ok(payload), nil
}

func (p *Provider) handleGetJob(ctx context.Context, args map[string]any) (map[string]any, error) {
	job, err := p.client.GetJob(ctx, argInt64(args, "job_id", 0))
	if err != nil {
		return fail("failed to get job: %v", err), nil
	}

	payload := map[string]any{
		"job_id":       job.JobID,
		"creator":      job.CreatorUserName,
		"created_time": job.CreatedTime,
	}
	if job.Settings != nil {
		payload["name"] = job.Settings.Name
		payload["max_concurrent_runs"] = job.Settings.MaxConcurrentRuns
	}
	return ok(payload), nil
}

func (p *Provider) handleRunJobNow(ctx context.Context, args map[string]any) (map[string]any, error) {
	jobID := argInt64(args, "job_id", 0)
	runID, err := p.client.RunNow(ctx, jobID)
	if err != nil {
		return fail("failed to run job: %v", err), nil
	}
	return ok(map[string]any{"job_id": jobID, "run_id": runID}), nil
}

func (p *Provider) handleListJobRuns(ctx context.Context, args map[string]any) (map[string]any, error) {
	runs, err := p.client.ListRuns(ctx, argInt64(args, "job_id", 0), argInt(args, "limit", 0))
	if err != nil {
		return fail("failed to list job runs: %v", err), nil
	}

	items := make([]map[string]any, 0, len(runs))
	for _, r := range runs {
		item := map[string]any{
			"run_id":     r.RunID,
			"job_id":     r.JobID,
			"run_name":   r.RunName,
			"start_time": r.StartTime,
			"end_time":   r.EndTime,
		}
		if r.State != nil {
			item["life_cycle_state"] = r.State.LifeCycleState
			item["result_state"] = r.State.ResultState
		}
		items = append(items, item)
	}

	return ok(map[string]any{"runs": items, "count": len(items)}), nil
}

func (p *Provider) handleListPipelines(ctx context.Context, args map[string]any) (map[string]any, error) {
	pipelines, err := p.client.ListPipelines(ctx, argInt(args, "max_results", 0))
	if err != nil {
		return fail("failed to list pipelines: %v", err), nil
	}

	items := make([]map[string]any, 0, len(pipelines))
	for _, pl := range pipelines {
		items = append(items, map[string]any{
			"pipeline_id": pl.PipelineID,
			"name":        pl.Name,
			"state":       pl.State,
		})
	}

	return ok(map[string]any{"pipelines": items, "count": len(items)}), nil
}

func (p *Provider) handleGetPipeline(ctx context.Context, args map[string]any) (map[string]any, error) {
	pipeline, err := p.client.GetPipeline(ctx, argString(args, "pipeline_id"))
	if err != nil {
		return fail("failed to get pipeline: %v", err), nil
	}

	return ok(map[string]any{
		"pipeline_id": pipeline.PipelineID,
		"name":        pipeline.Name,
		"state":       pipeline.State,
		"creator":     pipeline.CreatorName,
	}), nil
}
