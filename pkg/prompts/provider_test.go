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

package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPrompts(t *testing.T) {
	p := NewProvider()

	prompts, err := p.ListPrompts(context.Background())
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "build_lakeview_dashboard", prompts[0].Name)
	assert.NotEmpty(t, prompts[0].Description)
}

func TestGetPromptWithTopic(t *testing.T) {
	p := NewProvider()

	result, err := p.GetPrompt(context.Background(), "build_lakeview_dashboard", map[string]interface{}{
		"topic": "monthly sales by region",
	})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	msg := result.Messages[0]
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "text", msg.Content.Type)
	assert.Contains(t, msg.Content.Text, "about monthly sales by region")
	assert.Contains(t, msg.Content.Text, "create_lakeview_dashboard")
}

func TestGetPromptWithoutTopic(t *testing.T) {
	p := NewProvider()

	result, err := p.GetPrompt(context.Background(), "build_lakeview_dashboard", nil)
	require.NoError(t, err)
	assert.Contains(t, result.Messages[0].Content.Text, "Lakeview dashboard.")
}

func TestGetPromptUnknown(t *testing.T) {
	p := NewProvider()

	_, err := p.GetPrompt(context.Background(), "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt")
}
