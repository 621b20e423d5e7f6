package assets

// HIFLD readers. Each keeps operational assets located in contiguous states
// and drops dataset-internal bookkeeping columns.

// PowerPlants reads the HIFLD Power Plants CSV file and keeps operational
// plants located in contiguous states.
func PowerPlants(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	t.DropColumns("OBJECTID")
	t.RenameColumn("SOURC_LONG", "SOURCE_LON")
	return t.Filter(func(r Row) bool {
		_, ok := ContiguousStates[r.Get("STATE")]
		return ok && r.Get("STATUS") == "OP"
	}), nil
}

// GeneratingUnits reads the HIFLD Generating Units CSV file and keeps
// operational units located in contiguous states.
func GeneratingUnits(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	t.DropColumns("OBJECTID")
	return t.Filter(func(r Row) bool {
		_, ok := ContiguousStates[r.Get("STATE")]
		return ok && r.Get("STATUS") == "OP"
	}), nil
}

// Substations reads the HIFLD Electric Substations CSV file and keeps in
// service substations in contiguous states that are connected to at least
// one transmission line.
func Substations(path string) (*Table, error) {
	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	t.DropColumns("OBJECTID")
	t.Round("MAX_VOLT", 3)
	t.Round("MIN_VOLT", 3)
	return t.Filter(func(r Row) bool {
		if _, ok := ContiguousStates[r.Get("STATE")]; !ok {
			return false
		}
		status := r.Get("STATUS")
		if status != "IN SERVICE" && status != "NOT AVAILABLE" {
			return false
		}
		lines, ok := r.Float("LINES")
		return !ok || lines > 0
	}), nil
}
