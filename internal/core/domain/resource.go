package domain

import "sort"

// Resource describes the REST endpoints of one admin console entity.
type Resource struct {
	Name       string
	ListPath   string
	UpsertPath string
	// DeletePath is suffixed with "/<id>" unless DeleteParam is set, in which
	// case the id travels as that query parameter.
	DeletePath  string
	DeleteParam string
}

var resources = map[string]Resource{
	"roles": {
		Name:       "roles",
		ListPath:   "roles/fetchAllRoles",
		UpsertPath: "roles/InsertOrUpdateRole",
		DeletePath: "roles/DeleteRole",
	},
	"departments": {
		Name:       "departments",
		ListPath:   "departments/fetchAllDepartments",
		UpsertPath: "departments/InsertOrUpdateDepartment",
		DeletePath: "departments/DeleteDepartment",
	},
	"designations": {
		Name:       "designations",
		ListPath:   "designations/fetchAllDesignations",
		UpsertPath: "designations/InsertOrUpdateDesignation",
		DeletePath: "designations/DeleteDesignation",
	},
	"countries": {
		Name:       "countries",
		ListPath:   "countries/fetchAllCountries",
		UpsertPath: "countries/InsertOrUpdateCountry",
		DeletePath: "countries/DeleteCountry",
	},
	"states": {
		Name:       "states",
		ListPath:   "states/fetchAllStates",
		UpsertPath: "states/InsertOrUpdateState",
		DeletePath: "states/DeleteState",
	},
	"cities": {
		Name:       "cities",
		ListPath:   "cities/fetchAllCities",
		UpsertPath: "cities/InsertOrUpdateCity",
		DeletePath: "cities/DeleteCity",
	},
	"holiday-calendars": {
		Name:       "holiday-calendars",
		ListPath:   "holiydacallender/fetchAllHolidayCalendars",
		UpsertPath: "holiydacallender/InsertOrUpdateHolidayCalendar",
		DeletePath: "holiydacallender/DeleteHolidayCalendar",
	},
	"document-types": {
		Name:       "document-types",
		ListPath:   "documenttypes/fetchAllDocumentTypes",
		UpsertPath: "documenttypes/InsertOrUpdateDocumentType",
		DeletePath: "documenttypes/DeleteDocumentType",
	},
	"employees": {
		Name:       "employees",
		ListPath:   "employees/fetchAllEmployees",
		UpsertPath: "employees/InsertOrUpdateEmployee",
		DeletePath: "employees/DeleteEmployee",
	},
	"employee-educations": {
		Name:        "employee-educations",
		ListPath:    "employee_education/fetchAllEmployeeEducations",
		UpsertPath:  "employee_education/InsertOrUpdateEmployeeEducation",
		DeletePath:  "employee_education/DeleteEmployeeEducation",
		DeleteParam: "employee_education_id",
	},
	"employee-employments": {
		Name:        "employee-employments",
		ListPath:    "employee_employment/fetchAllEmployeeEmployments",
		UpsertPath:  "employee_employment/InsertOrUpdateEmployeeEmployment",
		DeletePath:  "employee_employment/DeleteEmployeeEmployment",
		DeleteParam: "employee_employment_id",
	},
	"employee-addresses": {
		Name:        "employee-addresses",
		ListPath:    "employee_address/fetchAllEmployeeAddresses",
		UpsertPath:  "employee_address/InsertOrUpdateEmployeeAddress",
		DeletePath:  "employee_address/DeleteEmployeeAddress",
		DeleteParam: "employee_address_id",
	},
	"employee-emergency-contacts": {
		Name:        "employee-emergency-contacts",
		ListPath:    "employee_emergency_contact/fetchAllEmployeeEmergencyContacts",
		UpsertPath:  "employee_emergency_contact/InsertOrUpdateEmployeeEmergencyContact",
		DeletePath:  "employee_emergency_contact/DeleteEmployeeEmergencyContact",
		DeleteParam: "employee_emergency_contact_id",
	},
	"employee-salary-structures": {
		Name:        "employee-salary-structures",
		ListPath:    "employee_salary_structure/fetchAllEmployeeSalaryStructures",
		UpsertPath:  "employee_salary_structure/InsertOrUpdateEmployeeSalaryStructure",
		DeletePath:  "employee_salary_structure/DeleteEmployeeSalaryStructure",
		DeleteParam: "employee_salary_structure_id",
	},
	"users": {
		Name:       "users",
		ListPath:   "users/",
		UpsertPath: "users/",
		DeletePath: "users",
	},
}

// LookupResource returns the endpoints for a resource name.
func LookupResource(name string) (Resource, error) {
	r, ok := resources[name]
	if !ok {
		return Resource{}, ErrUnknownResource
	}
	return r, nil
}

// ResourceNames lists the catalog in stable order.
func ResourceNames() []string {
	names := make([]string, 0, len(resources))
	for n := range resources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
