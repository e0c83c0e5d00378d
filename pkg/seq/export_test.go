package seq

var SetFastaRdSize = setFastaRdSize

// DefaultReadSize lets tests put the buffer back.
const DefaultReadSize = defaultReadSize
