package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type _TestRecord struct {
	Stop      int32
	Arrival   int32
	Departure int32
	HasTimes  bool
}

func TestBufferRoundTrip(t *testing.T) {
	writer := NewBufferWriter()
	Write(writer, int32(42))
	Write(writer, _TestRecord{Stop: 3, Arrival: 100, Departure: 160, HasTimes: true})
	WriteArray(writer, Array[int64]{7, -1, 9})
	WriteArray(writer, Array[int32]{})
	WriteString(writer, "Wien Hbf")

	reader := NewBufferReader(writer.Bytes())
	assert.Equal(t, int32(42), Read[int32](reader))
	assert.Equal(t, _TestRecord{Stop: 3, Arrival: 100, Departure: 160, HasTimes: true}, Read[_TestRecord](reader))
	assert.Equal(t, Array[int64]{7, -1, 9}, ReadArray[int64](reader))
	assert.Empty(t, ReadArray[int32](reader))
	assert.Equal(t, "Wien Hbf", ReadString(reader))
	require.NoError(t, reader.Err())
}

func TestBufferReaderTruncated(t *testing.T) {
	writer := NewBufferWriter()
	WriteArray(writer, Array[int32]{1, 2, 3})
	data := writer.Bytes()

	reader := NewBufferReader(data[:len(data)-2])
	ReadArray[int32](reader)
	require.Error(t, reader.Err())

	// later reads keep the first error and return zero values
	assert.Equal(t, int32(0), Read[int32](reader))
	assert.Error(t, reader.Err())
}

func TestBufferReaderInvalidSize(t *testing.T) {
	writer := NewBufferWriter()
	Write(writer, int32(-5))

	reader := NewBufferReader(writer.Bytes())
	assert.Nil(t, ReadArray[int32](reader))
	assert.ErrorContains(t, reader.Err(), "invalid array size")
}

func TestCompressedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blob.bin")
	data := []byte("some repeated content, some repeated content, some repeated content")

	require.NoError(t, WriteCompressedFile(data, file))
	read, err := ReadCompressedFile(file)
	require.NoError(t, err)
	assert.Equal(t, data, read)

	_, err = ReadCompressedFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorContains(t, err, "file not found")
}

func TestJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "meta.json")
	value := map[string]int{"stations": 12, "journeys": 3}

	require.NoError(t, WriteJSONToFile(value, file))
	read, err := ReadJSONFromFile[map[string]int](file)
	require.NoError(t, err)
	assert.Equal(t, value, read)
}
