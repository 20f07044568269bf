package profile

// Fixed document blocks. The static controller (SMPLHUB) and generic device
// (DEVICE) definitions never change; room blocks are appended per discovered
// room. Formatting is part of the contract with the host profile loader, so
// these strings are reproduced byte for byte.

const nodeDefHeader = `<nodeDefs>

    <nodeDef id="SMPLHUB" nls="SHUB">
        <editors />
        <sts>
            <st id="ST" editor="_2_0_R_0_1" />
        </sts>
        <cmds>
            <sends />
            <accepts>
                <cmd id="DISCOVER" />
            </accepts>
        </cmds>
    </nodeDef>

    <nodeDef id="DEVICE" nls="DEV">
        <editors />
        <sts>
            <st id="ST" editor="DCMD" />
        </sts>
        <cmds>
            <sends />
            <accepts>
                <cmd id="DON" />
                <cmd id="DOF" />
                <cmd id="PTOGGLE" />
                <cmd id="SEND_CMD" init="ST" >
                    <p id="" editor="DCMD" />
                </cmd>
            </accepts>
        </cmds>
    </nodeDef>
`

const nodeDefFooter = `
</nodeDefs>`

// nodeDefRoomTemplate takes the room index three times: the node type id,
// the state editor, and the SET_ACTIVITY parameter editor all derive from it.
const nodeDefRoomTemplate = `
    <nodeDef id="ROOM%d" nls="ROOM">
        <editors />
        <sts>
            <st id="ST" editor="R%dCMD" />
        </sts>
        <cmds>
            <sends />
            <accepts>
                <cmd id="SET_ACTIVITY" init="ST" >
                    <p id="" editor="R%dCMD" />
                </cmd>
            </accepts>
        </cmds>
    </nodeDef>
`

const nlsHeader = `# controller
ND-SMPLHUB-NAME = SimpleHub
ND-SMPLHUB-ICON = GenericCtl
CMD-SHUB-DISCOVER-NAME = Re-Discover
ST-SHUB-ST-NAME = NodeServer Online

ST-ROOM-ST-NAME = Last command
CMD-ROOM-SET_ACTIVITY-NAME = Run Activity

# device
ND-DEVICE-NAME = Device
ND-DEVICE-ICON = GenericRsp

ST-DEV-ST-NAME = Last command
CMD-DEV-DON-NAME = Power On
CMD-DEV-DOF-NAME = Power Off
CMD-DEV-PTOGGLE-NAME = Power Toggle
CMD-DEV-SEND_CMD-NAME = Send Command

`

const nlsFooter = "\n"

// nlsRoomTemplate takes index, name, index.
const nlsRoomTemplate = `
ND-ROOM%d-NAME = %s
ND-ROOM%d-ICON = GenericRspCtl
`

const editorsHeader = `<editors>
`

const editorsFooter = `
</editors>`

// editorRoomTemplate takes index, min, max, index. The nls attribute names
// the R<index>ACT group emitted in the localisation file.
const editorRoomTemplate = `
  <editor id="R%dCMD">
    <range uom="25" min="%d" max="%d" nls="R%dACT" />
  </editor>
`

// editorDeviceTemplate takes the catalogue size.
const editorDeviceTemplate = `
  <editor id="DCMD">
    <range uom="25" min="1" max="%d" nls="DCMD" />
  </editor>
`
