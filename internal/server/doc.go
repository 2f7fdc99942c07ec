// Package server exposes the report pipeline over HTTP.
//
// POST /api/wrapped accepts a multipart upload with a required "diary" CSV,
// an optional "ratings" CSV, and optional "year" and "enrich" fields, and
// answers with the report as JSON. GET /api/health is a liveness probe.
// Uploads are rate limited per client IP.
package server
