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
package healthcheck_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/penny-vault/ffactors/healthcheck"
)

var _ = Describe("Healthcheck", func() {
	var (
		ctx    context.Context
		server *ghttp.Server
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = ghttp.NewServer()
	})

	AfterEach(func() {
		server.Close()
	})

	It("names checks after the data directory", func() {
		Expect(healthcheck.CheckName("/srv/data/CRSP Monthly/")).To(Equal("ffactors-crsp-monthly"))
	})

	It("creates a check and returns its ping url", func() {
		original := healthcheck.APIBase
		healthcheck.APIBase = server.URL()
		DeferCleanup(func() { healthcheck.APIBase = original })

		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest(http.MethodPost, "/checks/"),
			ghttp.VerifyHeaderKV("X-Api-Key", "secret"),
			ghttp.VerifyJSON(`{"name":"ffactors-data","desc":"Fama-French 1993 factor construction",
				"grace":3600,"schedule":"0 6 1 * *","slug":"ffactors-data","tags":"ffactors",
				"tz":"America/New_York","unique":["slug"]}`),
			ghttp.RespondWith(http.StatusCreated, `{"ping_url":"https://hc-ping.com/abc"}`,
				http.Header{"Content-Type": []string{"application/json"}}),
		))

		pingURL, err := healthcheck.Create(ctx, "secret", "ffactors-data", "0 6 1 * *")
		Expect(err).NotTo(HaveOccurred())
		Expect(pingURL).To(Equal("https://hc-ping.com/abc"))
	})

	It("reports success and failure", func() {
		server.AppendHandlers(
			ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/abc/start"),
				ghttp.RespondWith(http.StatusOK, "OK"),
			),
			ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/abc"),
				ghttp.VerifyBody([]byte("642 months")),
				ghttp.RespondWith(http.StatusOK, "OK"),
			),
			ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/abc/fail"),
				ghttp.RespondWith(http.StatusOK, "OK"),
			),
		)

		pingURL := server.URL() + "/abc/"
		Expect(healthcheck.Start(ctx, pingURL)).To(Succeed())
		Expect(healthcheck.Ping(ctx, pingURL, true, "642 months")).To(Succeed())
		Expect(healthcheck.Ping(ctx, pingURL, false, "schema violation")).To(Succeed())
		Expect(server.ReceivedRequests()).To(HaveLen(3))
	})

	It("fails on an unexpected status", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusNotFound, "not found"))

		err := healthcheck.Ping(ctx, server.URL()+"/missing", true, "")
		Expect(err).To(MatchError(healthcheck.ErrStatus))
	})
})
