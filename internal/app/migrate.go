package app

import (
	"dayflow/internal/employee"
	"dayflow/internal/leave"
	"dayflow/internal/user"

	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&employee.Employee{},
		&employee.EmployeeProfile{},
		&leave.LeaveRequest{},
	); err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			counter_type varchar(50) PRIMARY KEY,
			last_value bigint NOT NULL DEFAULT 0,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id uuid PRIMARY KEY,
			request_id text,
			aggregate_type varchar(50) NOT NULL,
			aggregate_id uuid NOT NULL,
			event_type varchar(100) NOT NULL,
			topic varchar(200) NOT NULL,
			payload jsonb NOT NULL,
			status varchar(20) NOT NULL DEFAULT 'pending',
			retry_count int NOT NULL DEFAULT 0,
			error_message text,
			next_retry_at timestamptz,
			processed_at timestamptz,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		// The exclusion constraint closes the submit race: two
		// overlapping PENDING/APPROVED rows for one employee cannot
		// both commit, whatever the interleaving.
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'leave_requests_no_overlap'
			) THEN
				ALTER TABLE leave_requests
					ADD CONSTRAINT leave_requests_no_overlap
					EXCLUDE USING gist (
						employee_id WITH =,
						daterange(from_date::date, to_date::date, '[]') WITH &&
					)
					WHERE (status IN ('PENDING', 'APPROVED'));
			END IF;
		END$$`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
