// Vahti - SQS alarm reconciler
// Every queue gets its backlog alarm; every orphaned alarm goes away.
package main

func main() {
	Execute()
}
