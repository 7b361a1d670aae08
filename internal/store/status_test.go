package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erazemk/sledilnik/internal/model"
)

func TestDiagnose(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	st := Diagnose(ctx, ds, true, false)
	assert.Equal(t, "connected", st.ConnectionStatus)
	assert.Equal(t, "sqlite", st.Store)
	assert.Equal(t, "set", st.DatabaseURL)
	assert.Equal(t, "not set", st.DatabaseName)
	assert.Empty(t, st.Collections)

	CreateItem(ctx, ds, model.NewItem{Title: "x"})
	st = Diagnose(ctx, ds, false, false)
	assert.Equal(t, []string{model.ActivityCollection, model.ItemCollection}, st.Collections)
	assert.Equal(t, "connected and working", st.Database)
}

func TestDiagnoseCapsCollections(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		ds.Insert(ctx, fmt.Sprintf("c%02d", i), map[string]string{"k": "v"})
	}
	assert.Len(t, Diagnose(ctx, ds, false, false).Collections, maxReportedCollections)
}

func TestDiagnoseClosedStore(t *testing.T) {
	ds := newTestStore(t)
	ctx := context.Background()
	ds.Close(ctx)

	st := Diagnose(ctx, ds, false, false)
	assert.Equal(t, "not connected", st.ConnectionStatus)
	assert.Contains(t, st.Database, "error")
}

func TestDiagnoseNilStore(t *testing.T) {
	st := Diagnose(context.Background(), nil, false, false)
	assert.Equal(t, "not available", st.Database)
}
