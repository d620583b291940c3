package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/sitedesk/internal/domain"
	"github.com/alexanderramin/sitedesk/internal/wbs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_ProjectAndNodes(t *testing.T) {
	s := mustParse(t, validFile)
	conv, err := Convert(s)
	require.NoError(t, err)

	p := conv.Project
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "MET01", p.ShortID)
	assert.Equal(t, "Metro Depot", p.Name)
	assert.Equal(t, "MMRDA", p.Client)
	assert.Equal(t, domain.ProjectActive, p.Status)
	require.NotNil(t, p.TargetDate)
	assert.Equal(t, "2027-03-31", p.TargetDate.Format("2006-01-02"))

	require.Len(t, conv.Nodes, 5)
	byName := map[string]*domain.WBSNode{}
	for _, n := range conv.Nodes {
		assert.Equal(t, p.ID, n.ProjectID)
		byName[n.Name] = n
	}

	sub := byName["Substructure"]
	assert.Nil(t, sub.ParentID)
	assert.Equal(t, domain.NodeGroup, sub.Kind)
	assert.Equal(t, domain.ScheduleNotStarted, sub.Status, "blank status defaults")

	foot := byName["Footings"]
	require.NotNil(t, foot.ParentID)
	assert.Equal(t, sub.ID, *foot.ParentID)
	assert.Equal(t, domain.NodeItem, foot.Kind)
	assert.Equal(t, 80.0, foot.Balance())
	assert.Equal(t, domain.ScheduleInProgress, foot.Status)

	exc := byName["Excavation"]
	assert.Nil(t, exc.RowIndex, "structural node keeps no row index")
	assert.Equal(t, domain.NodeTask, exc.Kind)

	grid := byName["Grid A-C"]
	assert.Equal(t, domain.NodeLeaf, grid.Kind)
	assert.Equal(t, exc.ID, *grid.ParentID)

	sup := byName["Superstructure"]
	assert.Equal(t, 1, sup.OrderIndex)
}

func TestConvert_RequiresProject(t *testing.T) {
	s := mustParse(t, `{"schedule": [{"row_index": 1, "name": "Civil"}]}`)
	_, err := Convert(s)
	assert.ErrorContains(t, err, "no project section")
}

func TestConvertNodes_RoundTripsThroughFlatten(t *testing.T) {
	s := mustParse(t, validFile)
	nodes := ConvertNodes("p1", s.Tree, time.Now().UTC())

	rows := wbs.Flatten(wbs.FromNodes(nodes))
	var names []string
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Substructure", "Footings", "Grid A-C", "Superstructure"}, names)
	assert.Equal(t, wbs.Flatten(s.Tree)[2].Level, rows[2].Level)
}
