package polaris

// Show displays Polaris information as either plain-text or HTML tables, for
// use in interactive sessions:
//
//	show := client.Show()
//	show.AsHTML()
//	show.Tables()
type Show struct {
	client  *Client
	display *Display
}

// Show returns the display facade for this client.
func (c *Client) Show() *Show {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.show == nil {
		c.show = &Show{client: c, display: newDisplay()}
	}
	return c.show
}

// Client returns the client this facade displays.
func (s *Show) Client() *Client {
	return s.client
}

// Display returns the underlying display, for output redirection or direct
// table rendering.
func (s *Show) Display() *Display {
	return s.display
}

// AsText switches to plain-text rendering.
func (s *Show) AsText() {
	s.display.Text()
}

// AsHTML switches to HTML rendering.
func (s *Show) AsHTML() {
	s.display.HTML()
}

// Object displays any API object as a key/value table.
func (s *Show) Object(obj interface{}) error {
	m, err := objectToMap(obj)
	if err != nil {
		return err
	}
	s.display.ShowObject(m, nil)
	return nil
}

// Tables displays the names of all tables.
func (s *Show) Tables() error {
	tables, err := s.client.ListTableSummaries()
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, []interface{}{t.Name})
	}
	s.display.ShowTable(rows, []string{"Table"})
	return nil
}

// TableDetails displays the summary metadata of all tables, one row each.
func (s *Show) TableDetails() error {
	tables, err := s.client.ListTableDetails()
	if err != nil {
		return err
	}
	objs := make([]map[string]interface{}, 0, len(tables))
	for i := range tables {
		obj, err := objectToMap(&tables[i])
		if err != nil {
			return err
		}
		objs = append(objs, obj)
	}
	s.display.ShowObjectList(objs, detailLabels)
	return nil
}

// Projects displays all projects with their plan, size and state.
func (s *Show) Projects() error {
	projects, err := s.client.Projects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		s.display.Message("No projects available.")
		return nil
	}
	rows := make([][]interface{}, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []interface{}{
			p.Metadata.Name,
			p.Metadata.UID,
			p.Spec.Plan,
			toMB(p.Status.CurrentBytes),
			p.Status.State,
		})
	}
	s.display.ShowTable(rows, []string{"Name", "ID", "Plan", "Size (MB)", "State"})
	return nil
}

var projectLabels = []ColumnLabel{
	{Key: "name", Header: "Name"},
	{Key: "uid", Header: "ID"},
	{Key: "plan", Header: "Plan"},
	{Key: "maxMb", Header: "Size Limit (MB)"},
	{Key: "currentMb", Header: "Current Size (MB)"},
	{Key: "desiredState", Header: "Desired State"},
	{Key: "state", Header: "Actual State"},
}

// Project displays one project as a key/value table. The empty name shows
// the default project.
func (s *Show) Project(name string) error {
	if name == "" {
		name = DefaultProjectName
	}
	proj, err := s.client.Project(name)
	if err != nil {
		if IsNotFound(err) {
			s.display.Alert("Project " + name + " is undefined")
			return nil
		}
		return err
	}
	details := map[string]interface{}{
		"name":         proj.Metadata.Name,
		"uid":          proj.Metadata.UID,
		"plan":         proj.Spec.Plan,
		"maxMb":        toMB(proj.Status.MaxBytes),
		"currentMb":    toMB(proj.Status.CurrentBytes),
		"desiredState": proj.Spec.DesiredState,
		"state":        proj.Status.State,
	}
	s.display.ShowObject(details, projectLabels)
	return nil
}

// SQL executes a query and displays the result rows.
func (s *Show) SQL(stmt string) error {
	result, err := s.client.ExecuteSQL(stmt)
	if err != nil {
		return err
	}
	if result.GetRowCount() == 0 {
		s.display.Message("Query returned no results.")
		return nil
	}
	cols := make([]ColumnLabel, 0, len(result.Columns))
	for _, name := range result.Columns {
		cols = append(cols, ColumnLabel{Key: name, Header: name})
	}
	objs := make([]map[string]interface{}, 0, len(result.Rows))
	for _, row := range result.Rows {
		objs = append(objs, row)
	}
	s.display.ShowObjectList(objs, cols)
	return nil
}

// toMB rounds a byte count to megabytes with three decimal places.
func toMB(bytes int64) float64 {
	return float64((bytes+500)/1000) / 1000
}
