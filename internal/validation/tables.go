package validation

import "swdb/internal/config"

// SoftwareRules is the declarative ruleset for software records, applied
// identically on create and update requests.
var SoftwareRules = []Rule{
	{Field: "swName", Required: true, Kind: KindString, Min: 2, Max: 40, ASCII: true},
	{Field: "version", Kind: KindString, Min: 1, Max: 30, ASCII: true},
	{Field: "branch", Kind: KindString, Min: 1, Max: 30, ASCII: true},
	{Field: "owner", Required: true, Kind: KindString, Min: 2, Max: 80, ASCII: true},
	{Field: "engineer", Kind: KindString, Min: 2, Max: 30, ASCII: true},
	{Field: "levelOfCare", Required: true, Kind: KindString,
		Enum: func(e *config.Enums) []string { return e.LevelOfCare }},
	{Field: "status", Required: true, Kind: KindString,
		Enum: func(e *config.Enums) []string { return e.Status }},
	{Field: "statusDate", Required: true, Kind: KindDate},
	{Field: "desc", Kind: KindString, Max: 2048, ASCII: true},
	{Field: "platforms", Kind: KindString, Min: 4, Max: 30, ASCII: true},
	{Field: "designDescDocLoc", Kind: KindURL, Max: 2048},
	{Field: "descDocLoc", Kind: KindURL, Max: 2048},
	{Field: "vvProcLoc", Kind: KindURLArray, Max: 2048},
	{Field: "vvResultsLoc", Kind: KindURLArray, Max: 2048},
	{Field: "versionControl", Kind: KindString,
		Enum: func(e *config.Enums) []string { return e.VersionControl }},
	{Field: "versionControlLoc", Kind: KindURL, Max: 2048},
	{Field: "recertFreq", Kind: KindString, Min: 1, Max: 30, ASCII: true},
	{Field: "recertStatus", Kind: KindString, Max: 30, ASCII: true},
	{Field: "recertDate", Kind: KindDate},
	{Field: "previous", Kind: KindIDRef},
	{Field: "comment", Kind: KindString, Max: 2048, ASCII: true},
}

// InstallationRules is the declarative ruleset for installation records
var InstallationRules = []Rule{
	{Field: "host", Required: true, Kind: KindString, Min: 2, Max: 30, ASCII: true},
	{Field: "name", Kind: KindString, Min: 2, Max: 30, ASCII: true},
	{Field: "area", Kind: KindStringArray,
		Enum: func(e *config.Enums) []string { return e.Area }},
	{Field: "slots", Kind: KindStringArray, Min: 1, Max: 30, ASCII: true},
	{Field: "status", Required: true, Kind: KindString,
		Enum: func(e *config.Enums) []string { return e.InstStatus }},
	{Field: "statusDate", Required: true, Kind: KindDate},
	{Field: "software", Required: true, Kind: KindIDRef},
	{Field: "vvResultsLoc", Kind: KindURLArray, Max: 2048},
	{Field: "vvApprovalDate", Kind: KindDate},
	{Field: "drr", Kind: KindString, Min: 1, Max: 30, ASCII: true},
}
