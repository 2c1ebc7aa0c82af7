// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package middleware provides the HTTP middleware shared by every route of the
Anchorr server.

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request and correlation ids.
  - PrometheusMetrics: counts requests and records latency, labelled by the
    chi route pattern so guild ids do not explode label cardinality.

Both are chi-compatible (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
