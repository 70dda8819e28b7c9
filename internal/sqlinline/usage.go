package sqlinline

const QInsertUsageEvent = `--sql 46a556e0-db67-471a-9551-d74fb7558877
insert into usage_events (id, user_id, request_id, event_type, success, latency_ms, country, created_at, properties)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::text, $4::boolean, $5::int, nullif($6::text, ''), now(), coalesce($7::jsonb, '{}'::jsonb));
`
