package store

import (
	"context"

	"github.com/erazemk/sledilnik/internal/docstore"
)

// maxReportedCollections caps the collection names included in a Status.
const maxReportedCollections = 10

// Status describes the state of the backing store.
type Status struct {
	Backend          string   `json:"backend" yaml:"backend"`
	Store            string   `json:"store" yaml:"store"`
	Database         string   `json:"database" yaml:"database"`
	DatabaseURL      string   `json:"database_url" yaml:"database_url"`
	DatabaseName     string   `json:"database_name" yaml:"database_name"`
	ConnectionStatus string   `json:"connection_status" yaml:"connection_status"`
	Collections      []string `json:"collections" yaml:"collections"`
}

// Diagnose pings the store and lists its collections. urlSet and nameSet
// report whether the database location was configured explicitly.
func Diagnose(ctx context.Context, ds docstore.Store, urlSet, nameSet bool) Status {
	st := Status{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      setOrNot(urlSet),
		DatabaseName:     setOrNot(nameSet),
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}
	if ds == nil {
		return st
	}

	st.Store = ds.Backend()
	if err := ds.Ping(ctx); err != nil {
		st.Database = "error: " + truncate(err.Error(), 50)
		return st
	}
	st.ConnectionStatus = "connected"

	names, err := ds.Collections(ctx)
	if err != nil {
		st.Database = "connected but error: " + truncate(err.Error(), 50)
		return st
	}
	if len(names) > maxReportedCollections {
		names = names[:maxReportedCollections]
	}
	if names != nil {
		st.Collections = names
	}
	st.Database = "connected and working"
	return st
}

func setOrNot(set bool) string {
	if set {
		return "set"
	}
	return "not set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
