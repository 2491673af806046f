package util

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

//*******************************************
// buffer reader
//*******************************************

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	var err error
	return BufferReader{
		reader: reader,
		err:    &err,
	}
}

// BufferReader keeps the first error, all reads after it return zero values.
type BufferReader struct {
	reader *bytes.Reader
	err    *error
}

func (self BufferReader) Err() error {
	return *self.err
}

func (self BufferReader) _Fail(err error) {
	if *self.err == nil {
		*self.err = err
	}
}

func Read[T any](reader BufferReader) T {
	var value T
	if *reader.err != nil {
		return value
	}
	if err := binary.Read(reader.reader, binary.LittleEndian, &value); err != nil {
		reader._Fail(err)
	}
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	size := Read[int32](reader)
	if *reader.err != nil {
		return nil
	}
	if size < 0 || int64(size) > int64(reader.reader.Len()) {
		reader._Fail(fmt.Errorf("invalid array size %v", size))
		return nil
	}
	value := NewArray[T](int(size))
	if size == 0 {
		return value
	}
	if err := binary.Read(reader.reader, binary.LittleEndian, &value); err != nil {
		reader._Fail(err)
	}
	return value
}

func ReadString(reader BufferReader) string {
	data := ReadArray[byte](reader)
	return string(data)
}

//*******************************************
// buffer writer
//*******************************************

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	if value.Length() == 0 {
		return
	}
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteString(writer BufferWriter, value string) {
	WriteArray(writer, Array[byte](value))
}

//*******************************************
// files
//*******************************************

// Writes data zlib-compressed to file.
func WriteCompressedFile(data []byte, file string) error {
	outfile, err := os.Create(file)
	if err != nil {
		return err
	}
	defer outfile.Close()

	encoder := zlib.NewWriter(outfile)
	if _, err := encoder.Write(data); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

func ReadCompressedFile(file string) ([]byte, error) {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %v", file)
	}

	infile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer infile.Close()

	decoder, err := zlib.NewReader(infile)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return io.ReadAll(decoder)
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, fmt.Errorf("file not found: %v", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}
