package midi

var valToPitch = map[uint8]string{
	0: "C", 1: "C#", 2: "D", 3: "D#",
	4: "E", 5: "F", 6: "F#", 7: "G",
	8: "G#", 9: "A", 10: "A#", 11: "B",
}

func NoteToPitch(note byte) string {
	return valToPitch[note%12]
}

// NoteToOctave uses the convention where note 0 is C-2 and note 64 is E3.
func NoteToOctave(note byte) int {
	return int(note/12) - 2
}
