// Package harness runs recipe collection scenarios and compares their
// traces with golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: favorites_only
//	description: "Only favorites pass the favorites filter"
//	locale: en
//	recipes:
//	  - id: "1"
//	    name: Githeri
//	    tags: [Vegetarian]
//	    date_added: "2024-01-15"
//	  - id: "2"
//	    name: Pilau
//	    favorite: true
//	    date_added: "2024-01-10"
//	steps:
//	  - query: { favorites_only: true }
//	    expect: [Pilau]
//	  - toggle_favorite: "2"
//	    expect_favorite: false
//	    expect: []
//
// Each step performs exactly one of query, add, toggle_favorite, rate or
// delete. After every step the harness records the view under the current
// query; expect compares recipe names in order.
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory store, a testutil.DeterministicClock
// starting at 2024-01-01 and sequential ids ("scenario-1", ...), so traces
// are byte-for-byte reproducible.
package harness
