package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Enrollment file naming: Inscritos_<course code>.xlsx
const (
	enrollmentPrefix = "Inscritos_"
	enrollmentExt    = ".xlsx"
)

// Student is one enrolled student as listed in an enrollment workbook
type Student struct {
	CourseCode string `json:"course_code"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// Enrollment column names, header row 1
const (
	colCourseCode = "CODIGO_CURSO"
	colName       = "NOMBRES"
	colEmail      = "CORREO"
	colPhone      = "CELULAR"
)

// ReadEnrollment reads the students listed on the first sheet of an
// enrollment workbook. Rows with every field blank are skipped; missing
// columns read as blank.
func ReadEnrollment(path string) ([]Student, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WorkbookUnreadable(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.WorkbookUnreadable(path, fmt.Errorf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WorkbookUnreadable(path, err)
	}
	if len(rows) == 0 {
		return []Student{}, nil
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[schedule.Fold(h)] = i
	}
	get := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	students := make([]Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		s := Student{
			CourseCode: get(row, colCourseCode),
			Name:       get(row, colName),
			Email:      get(row, colEmail),
			Phone:      get(row, colPhone),
		}
		if s == (Student{}) {
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

// Match pairs a course with its enrollment file
type Match struct {
	Record schedule.CourseRecord
	Path   string
}

// Discover finds Inscritos_<code>.xlsx files in dir belonging to one of the
// records. A file code matches a record code when the strings are equal or
// when both are numbers with the same value ("0101" matches "101").
// Matches are returned in file name order.
func Discover(dir string, records []schedule.CourseRecord) ([]Match, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("enrollment directory " + dir)
		}
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.HasPrefix(name, enrollmentPrefix) && strings.HasSuffix(name, enrollmentExt) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var matches []Match
	for _, name := range names {
		code := strings.TrimSuffix(strings.TrimPrefix(name, enrollmentPrefix), enrollmentExt)
		for _, rec := range records {
			if SameCode(code, rec.Code) {
				matches = append(matches, Match{Record: rec, Path: filepath.Join(dir, name)})
				break
			}
		}
	}
	return matches, nil
}

// EnrollmentPath is where the enrollment file of a course is expected
func EnrollmentPath(dir, code string) string {
	return filepath.Join(dir, enrollmentPrefix+code+enrollmentExt)
}

// SameCode compares course codes as strings or, when both are numbers, by
// value.
func SameCode(fileCode, courseCode string) bool {
	if fileCode == courseCode {
		return true
	}
	a, errA := strconv.Atoi(fileCode)
	b, errB := strconv.Atoi(courseCode)
	return errA == nil && errB == nil && a == b
}
