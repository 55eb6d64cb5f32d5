// Package jobassigner assigns capacity-bounded jobs to people, one job per
// person per round, without ever giving someone a job they already held.
//
// # Quick Start
//
//	cfg := jobassigner.DefaultConfig()
//	eng, err := jobassigner.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, name := range []string{"dishes", "trash", "sweep"} {
//	    job, _ := eng.NewJob(name)
//	    _ = eng.AddJob(job)
//	}
//	for id := 1; id <= 6; id++ {
//	    _ = eng.AddPerson(jobassigner.NewPerson(id, "first name", "last name"))
//	}
//
//	if err := eng.RunAssignment(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range eng.Assignments() {
//	    fmt.Println(a.PersonID, a.Job)
//	}
//
// # Rounds
//
// A round gives every person, in insertion order, a job that has a free slot
// and is not in their history. The previously held job moves into the
// history. A round is all-or-nothing: it fails up front with
// ErrInsufficientCapacity when there are more people than slots, and a person
// who has no eligible job left fails the round with ErrUnsatisfiable after
// the engine state has been restored to what it was before the round.
//
// ResetAll clears every history and every occupancy together, starting a new
// session with the same jobs and people.
//
// # Persistence
//
// Snapshot and Restore convert the engine to and from a serializable form.
// The store package saves snapshots to a JSON file or to a NATS JetStream
// KeyValue bucket so that rotations can continue across process runs.
package jobassigner
