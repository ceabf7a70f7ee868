package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabscribe/tabscribe/analyze"
	"github.com/tabscribe/tabscribe/preprocess"
)

func check(t *testing.T, text string) error {
	raw, err := analyze.Run(preprocess.Run(text))
	assert.NoError(t, err)
	return Run(raw)
}

func checkErr(t *testing.T, text string) *Error {
	err := check(t, text)
	assert.Error(t, err)
	verr, ok := err.(*Error)
	assert.True(t, ok)
	return verr
}

func TestFourQuartersFillACommonTimeBar(t *testing.T) {
	assert.NoError(t, check(t, "1-0:4 1-1:4 1-2:4 1-3:4"))
}

func TestOverfullBarIsDurationMismatch(t *testing.T) {
	verr := checkErr(t, "1-0:1 1-0:1 1-0:1")

	assert := assert.New(t)
	assert.Equal(DurationMismatch, verr.Kind)
	assert.Contains(verr.Msg, "12/1")
	assert.Contains(verr.Msg, "4/1")
}

func TestUnderfullBarIsDurationMismatch(t *testing.T) {
	verr := checkErr(t, "1-0:4 1-1:4")
	assert.Equal(t, DurationMismatch, verr.Kind)
}

func TestInheritedDurationCountsTowardTheSum(t *testing.T) {
	// three fret-only eighths inherit from 2-0:8
	assert.NoError(t, check(t, "1-0:2 2-0:8 2 3 4"))
}

func TestDurationInheritanceResetsPerSection(t *testing.T) {
	// the eighth from Intro must not leak into Verse, whose fret-only
	// quarters rely on the per-section default
	text := "[Intro]\n1-0:8 1 1 1 1 1 1 1\n\n[Verse]\n1-0 1 1 1"
	assert.NoError(t, check(t, text))
}

func TestBeatMetadataSetsTheBarTotal(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(check(t, "$beat=\"3/4\"\n1-0:4 1-1:4 1-2:4"))
	verr := checkErr(t, "$beat=\"3/4\"\n1-0:4 1-1:4 1-2:4 1-3:4")
	assert.Equal(DurationMismatch, verr.Kind)
}

func TestTupletScalesItsNotes(t *testing.T) {
	// triplet of quarters fills two beats
	assert.NoError(t, check(t, "1-0:2 [ 1-1:4 1-2 1-3 ]3"))
}

func TestRestsCountTowardTheSum(t *testing.T) {
	assert.NoError(t, check(t, "1-0:2 r:4 r"))
}

func TestUnknownMetadataKeyRejected(t *testing.T) {
	verr := checkErr(t, "$tempo=\"120\"\n1-0:1")
	assert.Equal(t, InvalidMetadata, verr.Kind)
}

func TestUnknownTuningRejected(t *testing.T) {
	verr := checkErr(t, "$tuning=\"banjo\"\n1-0:1")

	assert := assert.New(t)
	assert.Equal(InvalidTuning, verr.Kind)
	assert.Contains(verr.Msg, "banjo")
}

func TestStringOutOfRangeForTuning(t *testing.T) {
	assert := assert.New(t)

	verr := checkErr(t, "7-0:1")
	assert.Equal(StringOutOfRange, verr.Kind)

	// string 7 is fine on a seven string
	assert.NoError(check(t, "$tuning=\"guitar7\"\n7-0:1"))

	verr = checkErr(t, "$tuning=\"bass\"\n5-0:1")
	assert.Equal(StringOutOfRange, verr.Kind)
}

func TestAbsurdFretRejected(t *testing.T) {
	verr := checkErr(t, "1-99999999999999999999:1")
	assert.Equal(t, FretOutOfRange, verr.Kind)
}

func TestVoicingMembersAreRangeChecked(t *testing.T) {
	verr := checkErr(t, "(1-0 9-0):1")
	assert.Equal(t, StringOutOfRange, verr.Kind)
}

func TestBalancedRepeatBracketAccepted(t *testing.T) {
	assert.NoError(t, check(t, "{ 1-0:1\n1-1:1 }"))
}

func TestRepeatEndWithoutStartRejected(t *testing.T) {
	verr := checkErr(t, "1-0:1 }")
	assert.Equal(t, UnbalancedBracket, verr.Kind)
}

func TestUnclosedRepeatRejectedAtSectionEnd(t *testing.T) {
	verr := checkErr(t, "{ 1-0:1\n1-1:1")

	assert := assert.New(t)
	assert.Equal(UnbalancedBracket, verr.Kind)
	assert.Contains(verr.Msg, "never closed")
}

func TestBracketsAreSectionScoped(t *testing.T) {
	// a repeat left open in Intro is not closable from Verse
	verr := checkErr(t, "[Intro]\n{ 1-0:1\n\n[Verse]\n1-1:1 }")
	assert.Equal(t, UnbalancedBracket, verr.Kind)
}

func TestVoltasMustRunInOrder(t *testing.T) {
	assert := assert.New(t)

	ok := "{ 1-0:1\n{1 1-1:1 1}\n{2 1-2:1 2} }"
	assert.NoError(check(t, ok))

	outOfOrder := "{ 1-0:1\n{2 1-1:1 2}\n{1 1-2:1 1} }"
	verr := checkErr(t, outOfOrder)
	assert.Equal(UnbalancedBracket, verr.Kind)
	assert.Contains(verr.Msg, "out of order")
}

func TestVoltaNumberingRestartsWithANewRepeatGroup(t *testing.T) {
	text := "{ 1-0:1\n{1 1-1:1 1}\n{2 1-2:1 2} }\n{ 1-3:1\n{1 1-4:1 1} }"
	assert.NoError(t, check(t, text))
}

func TestFirstEndingMayContainTheRepeatEnd(t *testing.T) {
	assert.NoError(t, check(t, "{ 1-0:1\n{1 1-1:1 } 1}\n{2 1-2:1 2}"))
}

func TestErrorCarriesSectionBarAndLine(t *testing.T) {
	verr := checkErr(t, "[Intro]\n1-0:1\n\n[Verse]\n2-0:1\n3-0:2")

	assert := assert.New(t)
	assert.Equal(DurationMismatch, verr.Kind)
	assert.Equal(1, verr.Section)
	assert.Equal(1, verr.Bar)
	assert.Contains(verr.Error(), "section 1 bar 1")
}

func TestFirstErrorInSourceOrderWins(t *testing.T) {
	// both bars are wrong; the earlier one must be reported
	verr := checkErr(t, "9-0:1\n1-0:2")
	assert.Equal(t, StringOutOfRange, verr.Kind)
}
