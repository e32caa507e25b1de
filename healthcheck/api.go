// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/gosimple/slug"
)

var (
	ErrStatus = errors.New("status code is invalid")
)

// APIBase is the healthchecks.io management API endpoint
var APIBase = "https://healthchecks.io/api/v3"

type createReq struct {
	Name        string   `json:"name"`
	Description string   `json:"desc,omitempty"`
	Grace       int      `json:"grace"`
	Schedule    string   `json:"schedule"`
	Slug        string   `json:"slug"`
	Tags        string   `json:"tags"`
	Timezone    string   `json:"tz"`
	Unique      []string `json:"unique"`
}

type createResp struct {
	PingURL string `json:"ping_url"`
}

// CheckName returns the slug identifying the check of a data directory
func CheckName(dataDir string) string {
	return slug.Make(fmt.Sprintf("ffactors %s", filepath.Base(filepath.Clean(dataDir))))
}

// Create a new healthchecks.io check, or return the existing one with the
// same slug, and return its ping URL
func Create(ctx context.Context, apiKey, name, schedule string) (string, error) {
	command := createReq{
		Name:        name,
		Description: "Fama-French 1993 factor construction",
		Slug:        slug.Make(name),
		Tags:        "ffactors",
		Grace:       3600,
		Schedule:    schedule,
		Timezone:    "America/New_York",
		Unique:      []string{"slug"},
	}

	result := createResp{}

	client := resty.New()
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", apiKey).
		SetBody(command).
		SetResult(&result).
		Post(APIBase + "/checks/")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() > 201 {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return result.PingURL, nil
}

// Start signals that a run has begun
func Start(ctx context.Context, pingURL string) error {
	return ping(ctx, strings.TrimSuffix(pingURL, "/")+"/start", "")
}

// Ping reports the outcome of a run. The message is shown in the check's log.
func Ping(ctx context.Context, pingURL string, success bool, msg string) error {
	url := strings.TrimSuffix(pingURL, "/")
	if !success {
		url += "/fail"
	}
	return ping(ctx, url, msg)
}

func ping(ctx context.Context, url, msg string) error {
	client := resty.New()
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(msg).
		Post(url)

	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}
