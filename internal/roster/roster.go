// Package roster holds the static reference data the booking forms are
// built from: the physician roster, gender options, and identification
// document types. None of it is persisted.
package roster

// Doctor is a static roster entry used for physician selection and display.
type Doctor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

var Doctors = []Doctor{
	{Name: "John Green", Image: "/assets/images/dr-green.png"},
	{Name: "Leila Cameron", Image: "/assets/images/dr-cameron.png"},
	{Name: "David Livingston", Image: "/assets/images/dr-livingston.png"},
	{Name: "Evan Peter", Image: "/assets/images/dr-peter.png"},
	{Name: "Jane Powell", Image: "/assets/images/dr-powell.png"},
	{Name: "Alex Ramirez", Image: "/assets/images/dr-remirez.png"},
	{Name: "Jasmine Lee", Image: "/assets/images/dr-lee.png"},
	{Name: "Alyana Cruz", Image: "/assets/images/dr-cruz.png"},
	{Name: "Hardik Sharma", Image: "/assets/images/dr-sharma.png"},
}

// FindDoctor matches a physician by name against the roster.
func FindDoctor(name string) (Doctor, bool) {
	for _, d := range Doctors {
		if d.Name == name {
			return d, true
		}
	}
	return Doctor{}, false
}

// DoctorNames returns the roster names in declaration order.
func DoctorNames() []string {
	names := make([]string, len(Doctors))
	for i, d := range Doctors {
		names[i] = d.Name
	}
	return names
}

var GenderOptions = []string{"Male", "Female", "Other"}

var IdentificationTypes = []string{
	"Birth Certificate",
	"Driver's License",
	"Medical Insurance Card/Policy",
	"Military ID Card",
	"National Identity Card",
	"Passport",
	"Resident Alien Card (Green Card)",
	"Social Security Card",
	"State ID Card",
	"Student ID Card",
	"Voter ID Card",
}
