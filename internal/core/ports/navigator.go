package ports

// Navigator moves the console to a route. CurrentPath reports where it is now.
type Navigator interface {
	Navigate(path string)
	CurrentPath() string
}
