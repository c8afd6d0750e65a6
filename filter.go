package baserow

// Filter is a row filter operator. Each operator maps to the exact
// lowercase token Baserow expects inside a `filter__<field>__<token>`
// query parameter, so values are safe to persist in saved queries.
//
// The client does not check whether an operator is compatible with a
// field's type; the server performs that validation and its error is
// surfaced unchanged.
type Filter string

// Comparison and text operators.
const (
	FilterEqual             Filter = "equal"
	FilterNotEqual          Filter = "not_equal"
	FilterContains          Filter = "contains"
	FilterContainsNot       Filter = "contains_not"
	FilterContainsWord      Filter = "contains_word"
	FilterDoesntContainWord Filter = "doesnt_contain_word"
	FilterLengthIsLowerThan Filter = "length_is_lower_than"
)

// Numeric operators.
const (
	FilterHigherThan        Filter = "higher_than"
	FilterHigherThanOrEqual Filter = "higher_than_or_equal"
	FilterLowerThan         Filter = "lower_than"
	FilterLowerThanOrEqual  Filter = "lower_than_or_equal"
	FilterIsEvenAndWhole    Filter = "is_even_and_whole"
)

// Date operators.
const (
	FilterDateIs               Filter = "date_is"
	FilterDateIsNot            Filter = "date_is_not"
	FilterDateIsBefore         Filter = "date_is_before"
	FilterDateIsOnOrBefore     Filter = "date_is_on_or_before"
	FilterDateIsAfter          Filter = "date_is_after"
	FilterDateIsOnOrAfter      Filter = "date_is_on_or_after"
	FilterDateIsWithin         Filter = "date_is_within"
	FilterDateEqual            Filter = "date_equal"
	FilterDateNotEqual         Filter = "date_not_equal"
	FilterDateEqualsToday      Filter = "date_equals_today"
	FilterDateBeforeToday      Filter = "date_before_today"
	FilterDateAfterToday       Filter = "date_after_today"
	FilterDateWithinDays       Filter = "date_within_days"
	FilterDateWithinWeeks      Filter = "date_within_weeks"
	FilterDateWithinMonths     Filter = "date_within_months"
	FilterDateEqualsDaysAgo    Filter = "date_equals_days_ago"
	FilterDateEqualsMonthsAgo  Filter = "date_equals_months_ago"
	FilterDateEqualsYearsAgo   Filter = "date_equals_years_ago"
	FilterDateEqualsWeek       Filter = "date_equals_week"
	FilterDateEqualsMonth      Filter = "date_equals_month"
	FilterDateEqualsYear       Filter = "date_equals_year"
	FilterDateEqualsDayOfMonth Filter = "date_equals_day_of_month"
	FilterDateBefore           Filter = "date_before"
	FilterDateBeforeOrEqual    Filter = "date_before_or_equal"
	FilterDateAfter            Filter = "date_after"
	FilterDateAfterOrEqual     Filter = "date_after_or_equal"
	FilterDateAfterDaysAgo     Filter = "date_after_days_ago"
)

// Value-presence operators for aggregate and lookup fields.
const (
	FilterHasEmptyValue             Filter = "has_empty_value"
	FilterHasNotEmptyValue          Filter = "has_not_empty_value"
	FilterHasValueEqual             Filter = "has_value_equal"
	FilterHasNotValueEqual          Filter = "has_not_value_equal"
	FilterHasValueContains          Filter = "has_value_contains"
	FilterHasNotValueContains       Filter = "has_not_value_contains"
	FilterHasValueContainsWord      Filter = "has_value_contains_word"
	FilterHasNotValueContainsWord   Filter = "has_not_value_contains_word"
	FilterHasValueLengthIsLowerThan Filter = "has_value_length_is_lower_than"
	FilterHasAllValuesEqual         Filter = "has_all_values_equal"
	FilterHasAnySelectOptionEqual   Filter = "has_any_select_option_equal"
	FilterHasNoneSelectOptionEqual  Filter = "has_none_select_option_equal"
)

// File field operators.
const (
	FilterFilenameContains Filter = "filename_contains"
	FilterHasFileType      Filter = "has_file_type"
	FilterFilesLowerThan   Filter = "files_lower_than"
)

// Select and boolean operators.
const (
	FilterSingleSelectEqual    Filter = "single_select_equal"
	FilterSingleSelectNotEqual Filter = "single_select_not_equal"
	FilterSingleSelectIsAnyOf  Filter = "single_select_is_any_of"
	FilterSingleSelectIsNoneOf Filter = "single_select_is_none_of"
	FilterBoolean              Filter = "boolean"
	FilterMultipleSelectHas    Filter = "multiple_select_has"
	FilterMultipleSelectHasNot Filter = "multiple_select_has_not"
)

// Link-row and collaborator operators.
const (
	FilterLinkRowHas                  Filter = "link_row_has"
	FilterLinkRowHasNot               Filter = "link_row_has_not"
	FilterLinkRowContains             Filter = "link_row_contains"
	FilterLinkRowNotContains          Filter = "link_row_not_contains"
	FilterMultipleCollaboratorsHas    Filter = "multiple_collaborators_has"
	FilterMultipleCollaboratorsHasNot Filter = "multiple_collaborators_has_not"
)

// Emptiness and user-identity operators.
const (
	FilterEmpty     Filter = "empty"
	FilterNotEmpty  Filter = "not_empty"
	FilterUserIs    Filter = "user_is"
	FilterUserIsNot Filter = "user_is_not"
)

// String returns the wire token for the operator.
func (f Filter) String() string {
	return string(f)
}

// FilterTriple is a single filter condition: one field, one operator,
// one comparison value. Values always travel as strings; numeric and
// boolean interpretation happens server-side.
type FilterTriple struct {
	Field  string
	Filter Filter
	Value  string
}
