// Package refguard checks for live references to an entity before it is
// destructively deleted.
//
// A Guard holds an ordered list of probes, one per relationship that may
// point at the entity. Check runs them in registration order and returns the
// first reference found as a Warning carrying a reason code and the
// referencing entity's id; deletion proceeds only when every probe misses.
//
// Probes only read, so the guard takes no locks itself. Fencing the scan
// against concurrent status transitions is the deletion coordinator's
// responsibility.
package refguard
