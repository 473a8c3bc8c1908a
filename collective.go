package mimpi

// Barrier synchronizes every rank in the world.
func Barrier() error {
	return currentWorld().Barrier()
}

// Bcast fans data[:count] out from root to every rank.
func Bcast(data []byte, count, root int) error {
	return currentWorld().Bcast(data[:count], count, root)
}

// Reduce folds send[:count] from every rank under op into recv[:count]
// at root. recv may be nil at non-root ranks.
func Reduce(send, recv []byte, count int, op Op, root int) error {
	var recvSlice []byte
	if recv != nil {
		recvSlice = recv[:count]
	}
	return currentWorld().Reduce(send[:count], recvSlice, count, op, root)
}
