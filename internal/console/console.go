// Package console runs the interactive passport management menu.
package console

import (
	"io"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/prompt"
	"github.com/atinyakov/passportkeeper/internal/storage"
	"go.uber.org/zap"
)

// Registry is the set of passport operations the menu dispatches to.
type Registry interface {
	prompt.Registry

	CreateNew(app models.NewPassport) (models.NewPassport, error)
	UpdateNew(id string, app models.NewPassport) (models.NewPassport, error)
	DeleteNew(id string) error
	FindNewByID(id string) (models.NewPassport, error)
	FindNewByName(name string) (models.NewPassport, error)
	SortNew(key storage.SortKey) error
	NewPassports() []models.NewPassport

	CreateOld(app models.OldPassport) (models.OldPassport, error)
	UpdateOld(id string, app models.OldPassport) (models.OldPassport, error)
	DeleteOld(id string) error
	FindOldByID(id string) (models.OldPassport, error)
	FindOldByName(name string) (models.OldPassport, error)
	SortOld(key storage.SortKey) error
	OldPassports() []models.OldPassport
}

// cancelSearch aborts a search by name.
const cancelSearch = "##"

// Console reads menu choices and runs the selected operation.
type Console struct {
	reg Registry
	p   *prompt.Prompter
	out io.Writer
	log *zap.Logger
}

// New creates a Console reading from in and writing to out.
func New(reg Registry, in io.Reader, out io.Writer, log *zap.Logger) *Console {
	return &Console{reg: reg, p: prompt.New(in, out), out: out, log: log}
}

// Run shows the main menu until the user chooses 0 or input ends.
func (c *Console) Run() {
	for {
		c.p.Println()
		c.p.Println("--- Passport Management System ---")
		c.p.Println("1. Create Passport")
		c.p.Println("2. Update Passport")
		c.p.Println("3. Delete Passport")
		c.p.Println("4. Search Passport")
		c.p.Println("5. Display Passports")
		c.p.Println("6. Sort Passports")
		c.p.Println("0. Exit")
		choice, err := c.p.Choice("Enter your choice: ")
		if err != nil {
			c.log.Debug("input closed, leaving menu")
			c.p.Println()
			c.p.Println("Exiting program. Goodbye!")
			return
		}

		switch choice {
		case 1:
			c.subMenu("Create Passport", "Create New Passport", "Create Old Passport", c.createNew, c.createOld)
		case 2:
			c.subMenu("Update Passport", "Update New Passport", "Update Old Passport", c.updateNew, c.updateOld)
		case 3:
			c.subMenu("Delete Passport", "Delete New Passport", "Delete Old Passport", c.deleteNew, c.deleteOld)
		case 4:
			c.subMenu("Search Passport", "Search New Passport", "Search Old Passport", c.searchNew, c.searchOld)
		case 5:
			c.subMenu("Display Passports", "Display New Passports", "Display Old Passports", c.displayNew, c.displayOld)
		case 6:
			c.subMenu("Sort Passports", "Sort New Passports", "Sort Old Passports", c.sortNew, c.sortOld)
		case 0:
			c.p.Println("Exiting program. Goodbye!")
			return
		default:
			c.p.Println("Invalid choice. Please try again.")
		}
	}
}

// subMenu offers the new/old variants of an operation.
func (c *Console) subMenu(title, first, second string, onFirst, onSecond func()) {
	c.p.Printf("\n--- %s ---\n", title)
	c.p.Printf("1. %s\n", first)
	c.p.Printf("2. %s\n", second)
	choice, err := c.p.Choice("Enter choice (1 or 2): ")
	if err != nil {
		return
	}
	switch choice {
	case 1:
		onFirst()
	case 2:
		onSecond()
	default:
		c.p.Println("Invalid choice. Returning to main menu.")
	}
}

// report prints err for the user. End of input is silent because the main
// loop exits right after.
func (c *Console) report(err error) {
	if ierr.Is(err, ierr.ErrInputClosed) {
		return
	}
	if ierr.Is(err, ierr.ErrStorage) {
		c.p.Println("Error: " + ierr.Hint(err))
		return
	}
	c.p.Println(ierr.Hint(err))
}

func (c *Console) createNew() {
	app, err := c.p.NewPassport(c.reg, "")
	if err != nil {
		c.report(err)
		return
	}
	created, err := c.reg.CreateNew(app)
	if err != nil {
		c.report(err)
		return
	}
	c.p.Printf("New passport created successfully! Appointment date: %s\n", created.AppointmentDate)
}

func (c *Console) createOld() {
	app, err := c.p.OldPassport(c.reg, "")
	if err != nil {
		c.report(err)
		return
	}
	created, err := c.reg.CreateOld(app)
	if err != nil {
		c.report(err)
		return
	}
	c.p.Printf("Old passport created successfully! Appointment date: %s\n", created.AppointmentDate)
}

func (c *Console) updateNew() {
	id, err := c.p.Line("Enter New Passport ID to update: ")
	if err != nil {
		return
	}
	if _, err := c.reg.FindNewByID(id); err != nil {
		c.report(err)
		return
	}
	app, err := c.p.NewPassport(c.reg, id)
	if err != nil {
		c.report(err)
		return
	}
	if _, err := c.reg.UpdateNew(id, app); err != nil {
		c.report(err)
		return
	}
	c.p.Println("New passport updated successfully!")
}

func (c *Console) updateOld() {
	id, err := c.p.Line("Enter Old Passport ID to update: ")
	if err != nil {
		return
	}
	if _, err := c.reg.FindOldByID(id); err != nil {
		c.report(err)
		return
	}
	app, err := c.p.OldPassport(c.reg, id)
	if err != nil {
		c.report(err)
		return
	}
	if _, err := c.reg.UpdateOld(id, app); err != nil {
		c.report(err)
		return
	}
	c.p.Println("Old passport updated successfully!")
}

func (c *Console) deleteNew() {
	id, err := c.p.Line("Enter New Passport ID to delete: ")
	if err != nil {
		return
	}
	if err := c.reg.DeleteNew(id); err != nil {
		c.report(err)
		return
	}
	c.p.Println("New passport deleted successfully!")
}

func (c *Console) deleteOld() {
	id, err := c.p.Line("Enter Old Passport ID to delete: ")
	if err != nil {
		return
	}
	if err := c.reg.DeleteOld(id); err != nil {
		c.report(err)
		return
	}
	c.p.Println("Old passport deleted successfully!")
}

// searchBy asks whether to search by ID or by name and returns the key.
// ok is false when the search was abandoned.
func (c *Console) searchBy() (byName bool, key string, ok bool) {
	c.p.Println("1. Search by ID")
	c.p.Println("2. Search by Name")
	choice, err := c.p.Choice("Enter choice (1 or 2): ")
	if err != nil {
		return false, "", false
	}
	switch choice {
	case 1:
		key, err = c.p.Line("Enter ID to search: ")
		return false, key, err == nil
	case 2:
		key, err = c.p.Line("Enter Name to search (or ## to cancel): ")
		if err != nil {
			return true, "", false
		}
		if key == cancelSearch {
			c.p.Println("Search cancelled.")
			return true, "", false
		}
		return true, key, true
	}
	c.p.Println("Invalid choice. Returning to main menu.")
	return false, "", false
}

func (c *Console) searchNew() {
	byName, key, ok := c.searchBy()
	if !ok {
		return
	}
	find := c.reg.FindNewByID
	if byName {
		find = c.reg.FindNewByName
	}
	p, err := find(key)
	if err != nil {
		c.report(err)
		return
	}
	c.p.Println("New passport found:")
	printNew(c.out, p)
	c.p.Println(separator)
}

func (c *Console) searchOld() {
	byName, key, ok := c.searchBy()
	if !ok {
		return
	}
	find := c.reg.FindOldByID
	if byName {
		find = c.reg.FindOldByName
	}
	p, err := find(key)
	if err != nil {
		c.report(err)
		return
	}
	c.p.Println("Old passport found:")
	printOld(c.out, p)
}

// sortKey asks for the sort order. ok is false on an invalid choice.
func (c *Console) sortKey() (storage.SortKey, bool) {
	c.p.Println("1. Sort by Name")
	c.p.Println("2. Sort by Passport Type")
	choice, err := c.p.Choice("Enter choice (1 or 2): ")
	if err != nil {
		return 0, false
	}
	switch choice {
	case 1:
		return storage.ByName, true
	case 2:
		return storage.ByType, true
	}
	c.p.Println("Invalid choice. Returning to main menu.")
	return 0, false
}

func (c *Console) sortNew() {
	key, ok := c.sortKey()
	if !ok {
		return
	}
	if err := c.reg.SortNew(key); err != nil {
		c.report(err)
		return
	}
	c.p.Println("New passports sorted successfully!")
	c.displayNew()
}

func (c *Console) sortOld() {
	key, ok := c.sortKey()
	if !ok {
		return
	}
	if err := c.reg.SortOld(key); err != nil {
		c.report(err)
		return
	}
	c.p.Println("Old passports sorted successfully!")
	c.displayOld()
}

func (c *Console) displayNew() {
	displayNew(c.out, c.reg.NewPassports())
}

func (c *Console) displayOld() {
	displayOld(c.out, c.reg.OldPassports())
}
