package database

// Postgres DDL owning the two pieces of state the application never writes:
// the append-only audit_log ledger and the denormalized clubs.name_count.
//
// Attribution comes from the transaction-local app.actor_address setting
// stamped by WithActorTransaction; when unset the actor is recorded as null
// (system-originated). name_count is recomputed from club_members rather than
// incremented, so concurrent membership writes can never drift the counter.
var triggerDDL = []string{
	`CREATE OR REPLACE FUNCTION record_audit_entry() RETURNS trigger AS $$
DECLARE
    actor text := nullif(current_setting('app.actor_address', true), '');
    key text;
BEGIN
    IF TG_TABLE_NAME = 'clubs' THEN
        key := coalesce(NEW.name, OLD.name);
    ELSE
        key := coalesce(NEW.club_name, OLD.club_name) || ':' || coalesce(NEW.name, OLD.name);
    END IF;

    INSERT INTO audit_log (table_name, operation, record_key, old_data, new_data, actor_address, created_at)
    VALUES (
        TG_TABLE_NAME,
        TG_OP,
        key,
        CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE to_jsonb(OLD) END,
        CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE to_jsonb(NEW) END,
        actor,
        now()
    );

    RETURN coalesce(NEW, OLD);
END
$$ LANGUAGE plpgsql`,

	`CREATE OR REPLACE FUNCTION refresh_club_name_count() RETURNS trigger AS $$
BEGIN
    UPDATE clubs
    SET name_count = (
            SELECT count(*) FROM club_members m
            WHERE m.club_name = coalesce(NEW.club_name, OLD.club_name)
        ),
        updated_at = now()
    WHERE name = coalesce(NEW.club_name, OLD.club_name);

    RETURN coalesce(NEW, OLD);
END
$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS clubs_audit ON clubs`,
	`CREATE TRIGGER clubs_audit
        AFTER INSERT OR UPDATE OR DELETE ON clubs
        FOR EACH ROW EXECUTE FUNCTION record_audit_entry()`,

	`DROP TRIGGER IF EXISTS club_members_audit ON club_members`,
	`CREATE TRIGGER club_members_audit
        AFTER INSERT OR UPDATE OR DELETE ON club_members
        FOR EACH ROW EXECUTE FUNCTION record_audit_entry()`,

	// Counter refresh runs before the clubs audit trigger sees the UPDATE,
	// so a membership change produces exactly one attributed clubs UPDATE
	// entry alongside the membership entry.
	`DROP TRIGGER IF EXISTS club_members_count ON club_members`,
	`CREATE TRIGGER club_members_count
        AFTER INSERT OR DELETE ON club_members
        FOR EACH ROW EXECUTE FUNCTION refresh_club_name_count()`,
}
