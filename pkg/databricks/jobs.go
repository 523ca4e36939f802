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

package databricks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// JobSettings is the subset of job settings the tool layer surfaces.
type JobSettings struct {
	Name              string `json:"name,omitempty"`
	MaxConcurrentRuns int    `json:"max_concurrent_runs,omitempty"`
}

// Job is a Databricks job.
type Job struct {
	JobID           int64        `json:"job_id"`
	CreatorUserName string       `json:"creator_user_name,omitempty"`
	CreatedTime     int64        `json:"created_time,omitempty"`
	Settings        *JobSettings `json:"settings,omitempty"`
}

// ListJobsResponse is one page of jobs.
type ListJobsResponse struct {
	Jobs          []Job  `json:"jobs"`
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more,omitempty"`
}

// ListJobs returns one page of jobs.
func (c *Client) ListJobs(ctx context.Context, limit int, pageToken string) (*ListJobsResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}

	var resp ListJobsResponse
	if err := c.do(ctx, http.MethodGet, "/api/2.2/jobs/list", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetJob fetches a job definition.
func (c *Client) GetJob(ctx context.Context, jobID int64) (*Job, error) {
	query := url.Values{"job_id": {strconv.FormatInt(jobID, 10)}}

	var j Job
	if err := c.do(ctx, http.MethodGet, "/api/2.2/jobs/get", query, nil, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// RunNow triggers a job run and returns the run id.
func (c *Client) RunNow(ctx context.Context, jobID int64) (int64, error) {
	req := map[string]int64{"job_id": jobID}

	var resp struct {
		RunID int64 `json:"run_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/2.2/jobs/run-now", nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.RunID, nil
}

// RunState is the lifecycle and result state of a job run.
type RunState struct {
	LifeCycleState string `json:"life_cycle_state,omitempty"`
	ResultState    string `json:"result_state,omitempty"`
	StateMessage   string `json:"state_message,omitempty"`
}

// Run is one execution of a job.
type Run struct {
	RunID     int64     `json:"run_id"`
	JobID     int64     `json:"job_id"`
	RunName   string    `json:"run_name,omitempty"`
	State     *RunState `json:"state,omitempty"`
	StartTime int64     `json:"start_time,omitempty"`
	EndTime   int64     `json:"end_time,omitempty"`
}

// ListRuns returns one page of runs for a job (all jobs when jobID is 0).
func (c *Client) ListRuns(ctx context.Context, jobID int64, limit int) ([]Run, error) {
	query := url.Values{}
	if jobID > 0 {
		query.Set("job_id", strconv.FormatInt(jobID, 10))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Runs []Run `json:"runs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.2/jobs/runs/list", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}

// Pipeline is a Delta Live Tables pipeline.
type Pipeline struct {
	PipelineID  string `json:"pipeline_id"`
	Name        string `json:"name,omitempty"`
	State       string `json:"state,omitempty"`
	CreatorName string `json:"creator_user_name,omitempty"`
}

// ListPipelines returns the workspace's pipelines.
func (c *Client) ListPipelines(ctx context.Context, maxResults int) ([]Pipeline, error) {
	query := url.Values{}
	if maxResults > 0 {
		query.Set("max_results", strconv.Itoa(maxResults))
	}

	var resp struct {
		Statuses []Pipeline `json:"statuses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.0/pipelines", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

// GetPipeline fetches one pipeline.
func (c *Client) GetPipeline(ctx context.Context, pipelineID string) (*Pipeline, error) {
	var p Pipeline
	if err := c.do(ctx, http.MethodGet, "/api/2.0/pipelines/"+pipelineID, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
