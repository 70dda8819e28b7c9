package sqlinline

const QSelectUserLimits = `--sql 1d2c274c-dcb8-46e0-87b3-182250351873
select user_id, free_rewrites_today, to_char(last_reset, 'YYYY-MM-DD'), is_pro
from user_limits
where user_id = $1::uuid
limit 1;
`

// Insert-or-return-existing; the dummy conflict update makes RETURNING yield
// the row that already exists when two sessions race on first sign-in.
const QInsertUserLimits = `--sql cc330695-a714-47f7-bf75-637dab17f2d1
insert into user_limits (user_id, free_rewrites_today, last_reset, is_pro, created_at, updated_at)
values ($1::uuid, $2::int, $3::date, $4::boolean, now(), now())
on conflict (user_id) do update set updated_at = now()
returning user_id, free_rewrites_today, to_char(last_reset, 'YYYY-MM-DD'), is_pro;
`

// Partial patch: null arguments leave the stored column untouched.
const QPatchUserLimits = `--sql e674a63a-2d6b-4661-9a62-69e50776985d
update user_limits set
    free_rewrites_today = coalesce($2::int, free_rewrites_today),
    last_reset = coalesce($3::date, last_reset),
    is_pro = coalesce($4::boolean, is_pro),
    updated_at = now()
where user_id = $1::uuid
returning user_id, free_rewrites_today, to_char(last_reset, 'YYYY-MM-DD'), is_pro;
`
