package app

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id   UUID NOT NULL,
	event_type     TEXT NOT NULL,
	topic          TEXT NOT NULL,
	payload        JSONB NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created_at
	ON outbox_events (status, created_at);
`
