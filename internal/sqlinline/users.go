package sqlinline

const QUpsertGoogleProfile = `--sql 6a275a6c-1762-4dea-aa70-2e2581180d07
insert into user_profiles (id, google_sub, email, name, avatar_url, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, now(), now())
on conflict (google_sub) do update set
    email = excluded.email,
    name = excluded.name,
    avatar_url = excluded.avatar_url,
    updated_at = now()
returning id, google_sub, email, name, avatar_url, coalesce(stripe_customer_id, ''), created_at, updated_at;
`

const QSelectProfileByID = `--sql e3af9754-67ce-4050-a965-45e29528bd62
select id, google_sub, email, name, avatar_url, coalesce(stripe_customer_id, ''), created_at, updated_at
from user_profiles
where id = $1::uuid
limit 1;
`

const QSelectProfileByEmail = `--sql 308c997b-fe6d-4c69-aaf5-9b90d73e6578
select id, google_sub, email, name, avatar_url, coalesce(stripe_customer_id, ''), created_at, updated_at
from user_profiles
where email = $1::text
limit 1;
`
