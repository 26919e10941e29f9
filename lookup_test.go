package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

type stubPermissions struct {
	status location.Status
	err    error
}

func (p stubPermissions) Check(context.Context) (location.Status, error)   { return p.status, p.err }
func (p stubPermissions) Request(context.Context) (location.Status, error) { return p.status, p.err }

type stubProvider struct {
	got weather.Query
	res weather.Result
	err error
}

func (p *stubProvider) Current(_ context.Context, q weather.Query) (weather.Result, error) {
	p.got = q
	return p.res, p.err
}

func TestResolveHereGranted(t *testing.T) {
	loc := location.StaticLocator{Position: location.Coordinates{Latitude: 48.85, Longitude: 2.35}}
	q, err := resolveHere(context.Background(), stubPermissions{status: location.StatusGranted}, loc)
	require.NoError(t, err)
	assert.Equal(t, "48.85,2.35", q.String())
}

func TestResolveHereNotGranted(t *testing.T) {
	for _, st := range []location.Status{location.StatusDenied, location.StatusUndetermined} {
		_, err := resolveHere(context.Background(), stubPermissions{status: st}, location.StaticLocator{})
		assert.ErrorIs(t, err, errPermissionNotGranted)
	}
}

func TestResolveHerePermissionError(t *testing.T) {
	boom := errors.New("boom")
	_, err := resolveHere(context.Background(), stubPermissions{err: boom}, location.StaticLocator{})
	assert.ErrorIs(t, err, boom)
}

func TestPrintLookup(t *testing.T) {
	p := &stubProvider{res: weather.Result{LocationName: "Paris", TemperatureC: 18, Condition: "Cloudy"}}
	var buf bytes.Buffer
	q, _ := weather.CityQuery(" Paris ")
	require.NoError(t, printLookup(context.Background(), &buf, p, q))

	assert.Equal(t, "Paris", p.got.String())
	out := buf.String()
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "18°C")
	assert.Contains(t, out, "Cloudy")
}

func TestPrintLookupError(t *testing.T) {
	p := &stubProvider{err: weather.ErrNoData}
	var buf bytes.Buffer
	err := printLookup(context.Background(), &buf, p, weather.CoordinatesQuery(1, 2))
	assert.ErrorIs(t, err, weather.ErrNoData)
	assert.Empty(t, buf.String())
}

func TestFormatResultOmitsMissingCondition(t *testing.T) {
	out := formatResult(weather.Result{LocationName: "Oslo", TemperatureC: -3.5}, 80)
	assert.Contains(t, out, "-3.5°C")
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("\n")))
}
