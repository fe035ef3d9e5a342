package extract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Word 97-2003 binary layout offsets inside the FIB.
const (
	fibIdent        = 0xA5EC
	fibFlagsOffset  = 0x000A
	fibWhichTblStm  = 0x0200
	fibFcClxOffset  = 0x01A2
	fibLcbClxOffset = 0x01A6
	fibMinSize      = 0x01AA

	clxPrc  = 0x01
	clxPcdt = 0x02

	pcdSize        = 8
	fcCompressed   = 0x40000000
	fcOffsetMask   = 0x3FFFFFFF
	maxPieceLength = 1 << 24
)

var errNotWordDocument = errors.New("not a word 97-2003 document")

func extractDOC(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty doc data")
	}
	streams, err := readStreams(data, "WordDocument", "0Table", "1Table")
	if err != nil {
		return "", err
	}
	word, ok := streams["WordDocument"]
	if !ok {
		return "", errNotWordDocument
	}
	if len(word) < fibMinSize {
		return "", fmt.Errorf("word stream too short: %d bytes", len(word))
	}
	tableName := "0Table"
	if binary.LittleEndian.Uint16(word[fibFlagsOffset:])&fibWhichTblStm != 0 {
		tableName = "1Table"
	}
	table, ok := streams[tableName]
	if !ok {
		return "", fmt.Errorf("%s stream missing", tableName)
	}
	return wordText(word, table)
}

func readStreams(data []byte, names ...string) (map[string][]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := make(map[string][]byte, len(names))
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if !want[entry.Name] {
			continue
		}
		buf, err := io.ReadAll(entry)
		if err != nil {
			return nil, fmt.Errorf("read %s stream: %w", entry.Name, err)
		}
		out[entry.Name] = buf
	}
	return out, nil
}

// wordText walks the piece table stored in the CLX of the table stream and
// concatenates every text piece from the WordDocument stream.
func wordText(word, table []byte) (string, error) {
	if len(word) < fibMinSize || binary.LittleEndian.Uint16(word) != fibIdent {
		return "", errNotWordDocument
	}
	fcClx := binary.LittleEndian.Uint32(word[fibFcClxOffset:])
	lcbClx := binary.LittleEndian.Uint32(word[fibLcbClxOffset:])
	if lcbClx == 0 || uint64(fcClx)+uint64(lcbClx) > uint64(len(table)) {
		return "", errors.New("piece table out of range")
	}
	plc, err := pieceTable(table[fcClx : fcClx+lcbClx])
	if err != nil {
		return "", err
	}

	n := (len(plc) - 4) / (4 + pcdSize)
	if n <= 0 {
		return "", errors.New("empty piece table")
	}
	cps := make([]uint32, n+1)
	for i := range cps {
		cps[i] = binary.LittleEndian.Uint32(plc[i*4:])
	}
	pcds := plc[(n+1)*4:]

	win1252 := charmap.Windows1252.NewDecoder()
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	var out strings.Builder
	for i := 0; i < n; i++ {
		if cps[i+1] < cps[i] {
			return "", errors.New("piece table not ascending")
		}
		count := int(cps[i+1] - cps[i])
		if count > maxPieceLength {
			return "", errors.New("piece too large")
		}
		fc := binary.LittleEndian.Uint32(pcds[i*pcdSize+2:])

		var start, size int
		compressed := fc&fcCompressed != 0
		if compressed {
			start = int((fc & fcOffsetMask) / 2)
			size = count
		} else {
			start = int(fc)
			size = count * 2
		}
		if start < 0 || start+size > len(word) {
			return "", fmt.Errorf("piece %d out of range", i)
		}
		raw := word[start : start+size]

		var decoded []byte
		if compressed {
			decoded, err = win1252.Bytes(raw)
		} else {
			decoded, err = utf16.Bytes(raw)
		}
		if err != nil {
			return "", fmt.Errorf("decode piece %d: %w", i, err)
		}
		out.Write(decoded)
	}
	return cleanWordText(out.String()), nil
}

// pieceTable skips the Prc entries of a CLX and returns the PlcPcd payload.
func pieceTable(clx []byte) ([]byte, error) {
	i := 0
	for i < len(clx) {
		switch clx[i] {
		case clxPrc:
			if i+3 > len(clx) {
				return nil, errors.New("truncated prc")
			}
			cb := int(int16(binary.LittleEndian.Uint16(clx[i+1:])))
			if cb < 0 {
				return nil, errors.New("invalid prc size")
			}
			i += 3 + cb
		case clxPcdt:
			if i+5 > len(clx) {
				return nil, errors.New("truncated pcdt")
			}
			lcb := int(binary.LittleEndian.Uint32(clx[i+1:]))
			if lcb < 4 || i+5+lcb > len(clx) {
				return nil, errors.New("invalid pcdt size")
			}
			return clx[i+5 : i+5+lcb], nil
		default:
			return nil, fmt.Errorf("unexpected clx entry 0x%02x", clx[i])
		}
	}
	return nil, errors.New("pcdt not found")
}

// cleanWordText maps Word control characters to plain text and drops field codes.
func cleanWordText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	fieldDepth := 0
	inInstruction := false
	for _, r := range s {
		switch r {
		case 0x13: // field begin
			fieldDepth++
			inInstruction = true
			continue
		case 0x14: // field separator
			inInstruction = false
			continue
		case 0x15: // field end
			if fieldDepth > 0 {
				fieldDepth--
			}
			inInstruction = false
			continue
		}
		if inInstruction {
			continue
		}
		switch r {
		case '\r', 0x0B, 0x0C:
			b.WriteByte('\n')
		case 0x07:
			b.WriteByte('\t')
		case '\t', '\n':
			b.WriteRune(r)
		default:
			if r >= 0x20 {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
