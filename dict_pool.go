package lzw

import "sync"

// encodeDictPool recycles the encode hash tables between streams.
var encodeDictPool = sync.Pool{
	New: func() any {
		return newEncodeDict()
	},
}

// acquireEncodeDict returns an empty dictionary configured for the stream.
func acquireEncodeDict(maxBits int, blockMode bool) *encodeDict {
	dict := encodeDictPool.Get().(*encodeDict)
	dict.linearProbes = 0
	dict.configure(maxBits, blockMode)

	return dict
}

// releaseEncodeDict returns a dictionary to the pool.
func releaseEncodeDict(dict *encodeDict) {
	if dict == nil {
		return
	}

	encodeDictPool.Put(dict)
}
