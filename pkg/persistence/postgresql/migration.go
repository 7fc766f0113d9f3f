package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE projects (
				id VARCHAR(255) PRIMARY KEY,
				label VARCHAR(255) NOT NULL,
				document JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_projects_created_at ON projects(created_at);
			CREATE INDEX idx_projects_deleted_at ON projects(deleted_at);
		`,
		2: `
			-- Lookups of units by type across projects
			CREATE INDEX idx_projects_document ON projects USING GIN (document jsonb_path_ops);
		`,
	}
}
