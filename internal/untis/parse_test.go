package untis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<document date="20240815" time="1342">
  <general>
    <header1>Hochschule</header1>
    <schoolyearbegindate>20240902</schoolyearbegindate>
    <schoolyearenddate>20250831</schoolyearenddate>
    <termbegindate>20241001</termbegindate>
    <termenddate>20250228</termenddate>
  </general>
  <departments><department id="DP_INF"><longname>Informatik</longname></department></departments>
  <descriptions><description id="DS_V"><longname>Vorlesung</longname><flags>M</flags></description></descriptions>
  <timeperiods>
    <timeperiod id="TP_1_1"><day>1</day><period>1</period><starttime>0800</starttime><endtime>0930</endtime></timeperiod>
  </timeperiods>
  <subjects><subject id="SU_MA"><longname>Mathematik</longname><subjectgroup>M1</subjectgroup></subject></subjects>
  <classes><class id="CL_INF1"><longname>Informatik 1</longname><class_department id="DP_INF"/></class></classes>
  <teachers><teacher id="TR_MUE"><surname>Müller</surname><forename>Anna</forename></teacher></teachers>
  <rooms><room id="RM_A1.01"><longname>Hörsaal</longname><capacity>120</capacity></room></rooms>
  <lessons>
    <lesson id="LS_100_1">
      <lesson_subject id="SU_MA"/>
      <lesson_teacher id="TR_MUE" role="2"/>
      <lesson_classes id="CL_INF1 CL_INF2"/>
      <effectivebegindate>20241001</effectivebegindate>
      <effectiveenddate>20250228</effectiveenddate>
      <occurence>1111100</occurence>
      <times>
        <time><assigned_day>1</assigned_day><assigned_period>1</assigned_period><assigned_room id="RM_A1.01"/></time>
      </times>
    </lesson>
  </lessons>
</document>`

func TestParse_UTF8(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, "20240815", doc.Date)
	assert.Equal(t, "20240902", doc.General.SchoolYearBegin)
	require.Len(t, doc.Lessons, 1)

	l := doc.Lessons[0]
	assert.Equal(t, "LS_100_1", l.ID())
	assert.Equal(t, "2", l.Teacher.Role)
	assert.Equal(t, []string{"INF1", "INF2"}, l.Classes.Codes(PrefixGroup))
	assert.Equal(t, "1111100", l.Occurrence)
	require.Len(t, l.Times, 1)
	assert.Equal(t, "A1.01", l.Times[0].AssignedRoom.First(PrefixRoom))
	assert.Equal(t, "Müller", doc.Teachers[0].Surname)
	assert.Equal(t, "INF", doc.Classes[0].Department.First(PrefixCategory))
}

func TestParse_Latin1(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><document date="20240815" time="1342">`)
	buf.WriteString(`<teachers><teacher id="TR_X"><surname>M`)
	buf.WriteByte(0xFC) // ü
	buf.WriteString(`ller</surname></teacher></teachers></document>`)

	doc, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Teachers, 1)
	assert.Equal(t, "Müller", doc.Teachers[0].Surname)
}

func TestParse_WrongRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<timetable/>`))
	assert.ErrorIs(t, err, ErrNotUntisDocument)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<document><general>`))
	assert.Error(t, err)
}

func TestDocument_Sections(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	sections := doc.Sections()
	require.Len(t, sections, 8)
	assert.Equal(t, SectionCategories, sections[0].Name)
	assert.Equal(t, SectionUnits, sections[7].Name)
	assert.Equal(t, 1, sections[7].Count)
}
