// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package metrics defines the Prometheus collectors exported at /metrics.

Collectors are registered on the default registry through promauto at
package init, so importing the package is enough to expose them.

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Document store:
  - db_operation_duration_seconds{operation,collection}
  - db_operation_errors_total{operation,collection}

TMDB gateway:
  - tmdb_requests_total{endpoint,result}
  - tmdb_request_duration_seconds{endpoint}
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Cache:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_entries{cache_type}, cache_evictions_total{cache_type}

Recommendations:
  - recommendation_duration_seconds{kind}
  - recommendation_failures_total{kind}
  - recommendation_candidates{kind}

Events and websocket:
  - activity_events_published_total, activity_events_publish_failures_total
  - activity_events_delivered_total
  - websocket_connections, websocket_messages_sent_total, websocket_errors_total{error_type}
*/
package metrics
