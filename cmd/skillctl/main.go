// Command skillctl administers a skillswap deployment: seeding demo data,
// browsing the catalog and calling the gRPC API as a signed-in user.
package main

func main() {
	Execute()
}
