package postgres

const (
	queryInsertRequest = `insert into request_tracker.requests
		(id, title, description, type, priority, system, status,
		 requestors, requestor_names, assigned_developers, assigned_developer_names,
		 created_by, created_by_name, line_manager, line_manager_name,
		 implementation_scope, impact_analysis, architecture_design, design_review,
		 post_implementation_review, release_notes, user_approval_justification,
		 test_cases, releases, status_history, comments, attachments,
		 created_at, updated_at, due_date)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`

	queryUpdateRequest = `update request_tracker.requests set
		title = $2, description = $3, type = $4, priority = $5, system = $6, status = $7,
		requestors = $8, requestor_names = $9,
		assigned_developers = $10, assigned_developer_names = $11,
		created_by = $12, created_by_name = $13, line_manager = $14, line_manager_name = $15,
		implementation_scope = $16, impact_analysis = $17,
		architecture_design = $18, design_review = $19,
		post_implementation_review = $20, release_notes = $21, user_approval_justification = $22,
		test_cases = $23, releases = $24, status_history = $25, comments = $26, attachments = $27,
		created_at = $28, updated_at = $29, due_date = $30
		where id = $1`

	queryRequestExists = `select exists (select 1 from request_tracker.requests where id = $1)`

	queryMaxRequestNumber = `select coalesce(max((substring(id from 5))::int), 0)
		from request_tracker.requests where id ~ '^REQ-[0-9]+$'`

	queryListUsers = `select user_id, name, email, role, team
		from request_tracker.users order by user_id`

	queryGetUser = `select user_id, name, email, role, team
		from request_tracker.users where user_id = $1`

	queryListScenarios = `select id, system_name, scenario_name, description
		from request_tracker.system_scenarios order by id`

	queryListScenariosBySystem = `select id, system_name, scenario_name, description
		from request_tracker.system_scenarios where system_name = $1 order by id`

	queryInsertNotification = `insert into request_tracker.notifications
		(id, kind, user_id, request_id, request_title, message, read, created_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)`

	queryListNotifications = `select id, kind, user_id, request_id, request_title, message, read, created_at
		from request_tracker.notifications where user_id = $1 order by created_at desc`

	queryMarkNotificationRead = `update request_tracker.notifications set read = true
		where id = $1
		returning id, kind, user_id, request_id, request_title, message, read, created_at`
)
