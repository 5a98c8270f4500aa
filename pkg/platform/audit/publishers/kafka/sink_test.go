package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "launchpad/pkg/platform/audit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestSinkWrite(t *testing.T) {
	producer := &fakeProducer{}
	sink := NewSink(producer, "launchpad.onboarding.audit")
	ts := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	err := sink.Write(context.Background(), []audit.Event{
		{Action: "business_created", Category: audit.CategoryCompliance, SessionID: "s-1", Timestamp: ts},
		{Action: "onboarding_auth_failed", Category: audit.CategorySecurity, Subject: "jane@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, producer.records, 2)

	first := producer.records[0]
	assert.Equal(t, "launchpad.onboarding.audit", first.Topic)
	assert.Equal(t, "s-1", string(first.Key))
	assert.Equal(t, ts, first.Timestamp)
	assert.Equal(t, "compliance", string(first.Headers[0].Value))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(first.Value, &decoded))
	assert.Equal(t, "business_created", decoded.Action)

	assert.Equal(t, "jane@example.com", string(producer.records[1].Key))
}

func TestSinkWriteSurfacesProduceError(t *testing.T) {
	sink := NewSink(&fakeProducer{err: errors.New("not leader")}, "t")
	err := sink.Write(context.Background(), []audit.Event{{Action: "x"}})
	assert.ErrorContains(t, err, "not leader")
}

func TestNewClientRequiresBrokers(t *testing.T) {
	_, err := NewClient(nil, "t")
	assert.Error(t, err)
}
