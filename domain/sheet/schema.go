package sheet

// Sheet names as they appear in the source exports. The headers are French
// because the upstream spreadsheet format is fixed; they double as the
// persisted field names so documents stay readable next to the legacy data.
const (
	SheetPrincipal   = "Entité principale"
	SheetInternship  = "CONVENTION DE STAGE"
	SheetExchange    = "UNIVERSITE visitant"
	SheetHostCompany = "ENTREPRISE D'ACCUEIL"
	SheetMajor       = "Alpha"
)

// Column names shared across sheets.
const (
	ColIdentifier  = "Identifiant OP"
	ColOrigin      = "Etablissement d'origine"
	ColTrack       = "Filière"
	ColNationality = "Nationalité"
	ColFamilyName  = "Nom"
	ColGivenName   = "Prénom"

	ColParentID    = "Entité principale - Identifiant OP"
	ColLinkedID    = "Entité liée - Identifiant OP"
	ColLinkedStart = "Entité liée - Date de début du stage"
	ColLinkedEnd   = "Entité liée - Date de fin du stage"
	ColLinkedRole  = "Entité liée - Fonction occupée"
	ColLinkedName  = "Entité liée - Nom"

	ColExchangeStart = "Date de début"
	ColExchangeEnd   = "Date de fin"
	ColMobilityType  = "Type Mobilité"

	ColStipend  = "Indemnités du stage"
	ColDuration = "Durée"

	ColLinkedSIRET       = "Entité liée - Code SIRET"
	ColLinkedCountry     = "Entité liée - Pays"
	ColLinkedCity        = "Entité liée - Ville"
	ColLinkedForeignCity = "Entité liée - Ville (Hors France)"

	ColCohort    = "A"
	ColMajorName = "Majeure"
)

// IngestionSchema returns the required-sheet declarations for a fresh-import
// batch: the principal sheet plus the internship and exchange child sheets.
func IngestionSchema() []RequiredSheetSpec {
	return []RequiredSheetSpec{
		{
			Name: SheetPrincipal,
			RequiredColumns: []string{
				ColIdentifier,
				ColOrigin,
				ColTrack,
				ColNationality,
				ColFamilyName,
				ColGivenName,
			},
		},
		{
			Name: SheetInternship,
			RequiredColumns: []string{
				ColParentID,
				ColLinkedID,
				ColLinkedStart,
				ColLinkedEnd,
				ColLinkedRole,
				ColLinkedName,
			},
		},
		{
			Name: SheetExchange,
			RequiredColumns: []string{
				ColParentID,
				ColExchangeStart,
				ColExchangeEnd,
				ColMobilityType,
				ColLinkedName,
			},
		},
	}
}

// InternshipEnrichmentSchema returns the required-sheet declarations for a
// stage-attribute enrichment batch: the principal sheet carrying stipend and
// duration, and the host-company sheet carrying organization attributes.
func InternshipEnrichmentSchema() []RequiredSheetSpec {
	return []RequiredSheetSpec{
		{
			Name:            SheetPrincipal,
			RequiredColumns: []string{ColIdentifier},
		},
		{
			Name:            SheetHostCompany,
			RequiredColumns: []string{ColParentID},
		},
	}
}
