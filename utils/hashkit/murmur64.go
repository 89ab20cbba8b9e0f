package hashkit

const (
	murmurMul  uint64 = 0xc6a4a7935bd1e995
	murmurRot  uint32 = 47
	murmurSeed uint64 = 19780211
)

// Murmur64 is MurmurHash64A of data with a fixed seed.
func Murmur64(data []byte) uint64 {
	var length = uint64(len(data))
	var hash = murmurSeed ^ (length * murmurMul)

	for num := uint64(0); length >= 8; length -= 8 {
		num = uint64(data[0]) | uint64(data[1])<<8 |
			uint64(data[2])<<16 | uint64(data[3])<<24 | uint64(data[4])<<32 |
			uint64(data[5])<<40 | uint64(data[6])<<48 | uint64(data[7])<<56
		num *= murmurMul
		num ^= num >> murmurRot
		num *= murmurMul

		hash *= murmurMul
		hash ^= num
		data = data[8:]
	}

	switch length {
	case 7:
		hash ^= uint64(data[6]) << 48
		fallthrough
	case 6:
		hash ^= uint64(data[5]) << 40
		fallthrough
	case 5:
		hash ^= uint64(data[4]) << 32
		fallthrough
	case 4:
		hash ^= uint64(data[3]) << 24
		fallthrough
	case 3:
		hash ^= uint64(data[2]) << 16
		fallthrough
	case 2:
		hash ^= uint64(data[1]) << 8
		fallthrough
	case 1:
		hash ^= uint64(data[0])
		hash *= murmurMul
	}

	hash ^= hash >> murmurRot
	hash *= murmurMul
	hash ^= hash >> murmurRot
	return hash
}

// Folded64 buffers its input and reports Murmur64 of it folded to 32 bits.
// Murmur64 is not incremental, so every Sum hashes the whole buffer.
type Folded64 struct {
	buf []byte
}

func NewFolded64() *Folded64 {
	return &Folded64{}
}

func (f *Folded64) Reset() { f.buf = f.buf[:0] }

func (f *Folded64) Write(data []byte) (int, error) {
	f.buf = append(f.buf, data...)
	return len(data), nil
}

func (f *Folded64) Sum64() uint64 { return Murmur64(f.buf) }

func (f *Folded64) Sum32() uint32 {
	v := f.Sum64()
	return uint32(v>>32) ^ uint32(v)
}
