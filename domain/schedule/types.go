package schedule

import "time"

// CourseRecord is one normalized course of a monthly schedule sheet
type CourseRecord struct {
	Code             string               `json:"code"`
	Level            Level                `json:"level"`
	Cycle            *int                 `json:"cycle"`
	Modality         Modality             `json:"modality"`
	Instructor       string               `json:"instructor"`
	Language         Language             `json:"language"`
	DetectedDays     []string             `json:"detected_days"`
	DetailedSchedule map[Weekday]TimeSlot `json:"detailed_schedule"`
	StartDate        *time.Time           `json:"start_date"`
	EndDate          *time.Time           `json:"end_date"`
	MidtermDate      *time.Time           `json:"midterm_date"`
	FinalDate        *time.Time           `json:"final_date"`
	GradeUploadDate  *time.Time           `json:"grade_upload_date"`
	Enrolled         *int                 `json:"enrolled"`
	Expected         *int                 `json:"expected"`
	Passed           *int                 `json:"passed"`
	Failed           *int                 `json:"failed"`
	NoShow           *int                 `json:"no_show"`
	Detail           string               `json:"detail"`
}

// Source sheet column names
const (
	ColCode        = "CODIGO"
	ColCycle       = "CICLO"
	ColModality    = "MODALIDAD"
	ColInstructor  = "DOCENTE"
	ColDays        = "DIAS"
	ColHours       = "HORAS"
	ColEnrollment  = "Nª inscritos"
	ColStartDate   = "F. Inicio"
	ColEndDate     = "F. Fin"
	ColMidterm     = "Parcial"
	ColFinal       = "Final"
	ColGradeUpload = "Subida de notas"
	ColPassed      = "N° Aprobados"
	ColFailed      = "N° Desaprobados"
	ColNoShow      = "N° No asistio (tiene 0)"
	ColDetail      = "Destalle del curso"
)

// EnrollmentAliases are accepted spellings of the enrollment column.
var EnrollmentAliases = []string{ColEnrollment, "N° inscritos", "Nº inscritos", "No inscritos"}

// DateColumns are the five date columns of a schedule sheet.
var DateColumns = []string{ColStartDate, ColEndDate, ColMidterm, ColFinal, ColGradeUpload}

// Columns is the ordered column set of the normalized table.
var Columns = []string{
	"CODIGO", "Nivel", "Ciclo", "MODALIDAD", "DOCENTE", "IDIOMA", "DÍAS DETECTADOS",
	"HORARIO DETALLADO", "F. Inicio", "F. Fin", "Parcial", "Final", "Subida de notas",
	"N° Inscritos", "N° Esperado", "N° Aprobados", "N° Desaprobados",
	"N° No asistio (tiene 0)", "Destalle del curso",
}

// DateLayout is the only accepted date format for the date columns.
const DateLayout = "2006-01-02"

// RawRow is one sheet row as read: trimmed cell text keyed by header.
type RawRow map[string]string

// RawTable is a sheet as read from a workbook, before normalization.
type RawTable struct {
	Sheet   string
	Headers []string
	Rows    []RawRow
}

// HasColumn reports whether the header row contains name exactly.
func (t *RawTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// FindColumn returns the first header matching any of the names, compared
// without case or accents.
func (t *RawTable) FindColumn(names ...string) (string, bool) {
	for _, name := range names {
		folded := Fold(name)
		for _, h := range t.Headers {
			if Fold(h) == folded {
				return h, true
			}
		}
	}
	return "", false
}

// FirstCell returns the value of the row's first column.
func (t *RawTable) FirstCell(row RawRow) string {
	if len(t.Headers) == 0 {
		return ""
	}
	return row[t.Headers[0]]
}
