package structural_test

type Gender int

const (
	Unspecified Gender = iota
	Male
	Female
)

type Person struct {
	Gender   Gender
	Name     string
	About    *string
	Married  *bool
	Nickname *string
}

type Permission struct {
	Name        string
	Description *string
	Shortcut    *string
}

type Address struct {
	City   string
	Street string
}

type Employee struct {
	Name    string
	Address *Address
}

type Node struct {
	Name string
	Next *Node
}

func ptr[T any](v T) *T {
	return &v
}

func person(gender Gender, name string) Person {
	return Person{Gender: gender, Name: name}
}

func readPermission() *Permission {
	return &Permission{Name: "read", Description: ptr("Permission for read files")}
}
